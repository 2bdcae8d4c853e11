package create_operator

// CreateOperatorRequest HTTP request model
type CreateOperatorRequest struct {
	OperatorName string `json:"operatorName"`
}
