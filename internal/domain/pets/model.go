package pets

import "time"

// Gender de la mascota. Se guarda tal cual lo elige el dueño.
// @Enum macho, hembra
type Gender string

const (
	GenderMale   Gender = "macho"
	GenderFemale Gender = "hembra"
)

// Size orientativo para búsquedas.
// @Enum pequeño, mediano, grande
type Size string

const (
	SizeSmall  Size = "pequeño"
	SizeMedium Size = "mediano"
	SizeLarge  Size = "grande"
)

// Pet es una mascota registrada por su dueño.
// CurrentlyLost lo maneja únicamente alerts; el registro nunca lo toca.
type Pet struct {
	ID      string
	OwnerID string

	Name     string
	Species  string // perro, gato, ... (texto libre)
	Breed    string
	Color    string
	Gender   Gender
	Size     Size
	CoatType string

	BirthDate *time.Time
	PhotoURL  string
	Marks     string // señas particulares

	CurrentlyLost bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
