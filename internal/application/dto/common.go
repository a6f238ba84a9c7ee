package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// InsertResult resultado de una inserción (mismo contrato que devolvía el driver del document store).
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult resultado de una actualización.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult resultado de una eliminación.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Inserted construye el InsertResult de un documento recién creado.
func Inserted(id string) *InsertResult {
	return &InsertResult{Acknowledged: true, InsertedID: id}
}

// Deleted construye el DeleteResult.
func Deleted(n int64) *DeleteResult {
	return &DeleteResult{Acknowledged: true, DeletedCount: n}
}
