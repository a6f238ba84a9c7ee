package entity

import "time"

// Report es una denuncia de un usuario contra un producto. Solo un admin la elimina.
type Report struct {
	ID            string
	ProductRef    string
	ProductName   string
	ReporterEmail string
	Reason        string
	CreatedAt     time.Time
}
