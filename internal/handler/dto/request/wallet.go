package request

import "field-rental/internal/domain/money"

type RequestDepositRequest struct {
	Amount string `json:"amount" binding:"required"`
}

func (r RequestDepositRequest) Money() (money.Money, error) {
	return money.Parse(r.Amount)
}

type ListDepositsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=200"`
}
