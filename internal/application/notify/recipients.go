package notify

// Contact destinatario resuelto: un email y/o un teléfono. Cualquiera de los
// dos puede faltar; el dispatch intenta cada canal solo si hay dato.
type Contact struct {
	Email string
	Phone string
}

// IsEmpty true si el contacto no tiene ningún canal.
func (c Contact) IsEmpty() bool {
	return c.Email == "" && c.Phone == ""
}

// CombineFirstNonEmpty colapsa una cadena ordenada de candidatos en un solo
// contacto, por canal: el primer email no vacío gana, y por separado el
// primer teléfono no vacío. Así el teléfono puede venir de la empresa aunque
// el email venga del admin.
func CombineFirstNonEmpty(candidates ...Contact) Contact {
	var out Contact
	for _, c := range candidates {
		if out.Email == "" {
			out.Email = c.Email
		}
		if out.Phone == "" {
			out.Phone = c.Phone
		}
	}
	return out
}

// Subtract quita de c los canales que coinciden con los de other (diferencia
// de conjuntos por igualdad de dirección/número). Centraliza la regla "no
// avisar dos veces al creador cuando es el mismo admin".
func Subtract(c, other Contact) Contact {
	if c.Email != "" && c.Email == other.Email {
		c.Email = ""
	}
	if c.Phone != "" && c.Phone == other.Phone {
		c.Phone = ""
	}
	return c
}
