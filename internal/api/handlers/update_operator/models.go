package update_operator

// UpdateOperatorRequest HTTP request model
// Имя - единственное изменяемое поле оператора
type UpdateOperatorRequest struct {
	OperatorName string `json:"operatorName"`
}
