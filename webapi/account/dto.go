package account

// CreateInput is the request body for POST /accounts/.
type CreateInput struct {
	Name     string `json:"name" validate:"required,min=3,max=20"`
	Password string `json:"password" validate:"required,len=6,numeric"`
}

// DepositInput is the request body for POST /accounts/:id/deposit.
type DepositInput struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// WithdrawInput is the request body for POST /accounts/:id/withdraw.
type WithdrawInput struct {
	Amount   float64 `json:"amount" validate:"required,gt=0"`
	Password string  `json:"password" validate:"required"`
}

// PasswordInput carries the account password for freeze, unfreeze and
// delete.
type PasswordInput struct {
	Password string `json:"password" validate:"required"`
}

// BalanceOutput is the data payload of GET /accounts/:id/balance.
type BalanceOutput struct {
	Amount float64 `json:"amount"`
}
