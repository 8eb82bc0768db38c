package models

type LoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

type SearchRequest struct {
	Email string `json:"email" binding:"required"`
}
