package voucher

type CreateVoucherRequest struct {
	Value     int64  `json:"value" binding:"required"`
	ExpiresAt string `json:"expires_at" binding:"required"`
}

type VoucherResponse struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Value      int64  `json:"value"`
	ExpiresAt  string `json:"expires_at"`
	Redeemed   bool   `json:"redeemed"`
	RedeemedAt string `json:"redeemed_at,omitempty"`
	IssuedBy   string `json:"issued_by"`
	CreatedAt  string `json:"created_at"`
}
