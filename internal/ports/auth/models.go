package auth

// Claims representa la información extraída del token.
// Phone es la identidad del usuario (un perfil por teléfono).
type Claims struct {
	Phone string
	Name  string
	Email string
}
