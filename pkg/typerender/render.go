package typerender

import "strings"

// Render renders a type descriptor to its canonical M surface form. It is
// total (every well-formed Descriptor renders to some string), pure, and
// performs no I/O.
func Render(d Descriptor) string {
	var b strings.Builder

	renderInto(&b, d)

	return b.String()
}

func renderInto(b *strings.Builder, d Descriptor) {
	if d.Nullable && d.Primitive != PrimitiveAnyNonNull {
		b.WriteString("nullable ")
	}

	switch d.Kind {
	case KindPrimitive:
		b.WriteString(string(d.Primitive))
	case KindAnyUnion:
		renderJoined(b, d.Members, " | ", func(b *strings.Builder, m Descriptor) { renderInto(b, m) })
	case KindDefinedList:
		renderDefinedList(b, d.Members)
	case KindDefinedListType:
		b.WriteString("type ")
		renderDefinedList(b, d.Members)
	case KindListType:
		b.WriteString("type {")

		if d.Element != nil {
			renderInto(b, *d.Element)
		}

		b.WriteString("}")
	case KindDefinedRecord:
		renderRecordGroup(b, d.Fields, d.Open)
	case KindRecordType:
		b.WriteString("type ")
		renderRecordGroup(b, d.Fields, d.Open)
	case KindDefinedTable:
		b.WriteString("table ")
		renderRecordGroup(b, d.Fields, d.Open)
	case KindTableType:
		b.WriteString("type table ")
		renderRecordGroup(b, d.Fields, d.Open)
	case KindTableTypePrimaryExpression:
		b.WriteString("type table ")

		if d.Primary != nil {
			renderInto(b, *d.Primary)
		}
	case KindPrimaryPrimitiveType:
		b.WriteString("type ")
		b.WriteString(string(d.Primitive))
	case KindDefinedFunction:
		renderParameters(b, d.Parameters)
		b.WriteString(" => ")
		renderReturnType(b, d.ReturnType)
	case KindFunctionType:
		b.WriteString("type function ")
		renderParameters(b, d.Parameters)
		b.WriteString(" ")
		renderReturnType(b, d.ReturnType)
	}
}

func renderJoined[T any](b *strings.Builder, items []T, sep string, render func(*strings.Builder, T)) {
	for i, item := range items {
		if i > 0 {
			b.WriteString(sep)
		}

		render(b, item)
	}
}

func renderDefinedList(b *strings.Builder, members []Descriptor) {
	b.WriteString("{")
	renderJoined(b, members, ", ", func(b *strings.Builder, m Descriptor) { renderInto(b, m) })
	b.WriteString("}")
}

func renderRecordGroup(b *strings.Builder, fields []RecordField, open bool) {
	b.WriteString("[")

	renderJoined(b, fields, ", ", func(b *strings.Builder, f RecordField) {
		b.WriteString(f.Name)
		b.WriteString(": ")
		renderInto(b, f.Type)
	})

	if open {
		if len(fields) > 0 {
			b.WriteString(", ...")
		} else {
			b.WriteString("...")
		}
	}

	b.WriteString("]")
}

func renderParameters(b *strings.Builder, params []Parameter) {
	b.WriteString("(")

	renderJoined(b, params, ", ", func(b *strings.Builder, p Parameter) {
		b.WriteString(p.Name)
		b.WriteString(": ")

		if p.Optional {
			b.WriteString("optional ")
		}

		renderInto(b, p.Type)
	})

	b.WriteString(")")
}

func renderReturnType(b *strings.Builder, returnType *Descriptor) {
	if returnType == nil {
		b.WriteString(string(PrimitiveAny))

		return
	}

	renderInto(b, *returnType)
}
