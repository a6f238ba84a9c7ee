package entity

// Category es dato de referencia: solo lectura desde la API.
type Category struct {
	ID   string
	Name string
}
