package dto

// SetupRequest body para POST /api/setup: crea empresa, usuario admin,
// bodega principal y categoría inicial en una sola llamada (onboarding).
type SetupRequest struct {
	CompanyName   string `json:"company_name" validate:"required,min=1,max=200"`
	CompanyRUT    string `json:"company_rut" validate:"required,min=1,max=20"`
	AdminEmail    string `json:"admin_email" validate:"required,email"`
	AdminPassword string `json:"admin_password" validate:"required,min=8"`
	AdminName     string `json:"admin_name" validate:"omitempty,max=200"`
	WarehouseName string `json:"warehouse_name" validate:"omitempty,max=200"`
}

// SetupResponse resultado del onboarding.
type SetupResponse struct {
	Company   CompanyResponse   `json:"company"`
	Admin     UserResponse      `json:"admin"`
	Warehouse WarehouseResponse `json:"warehouse"`
	Category  CategoryResponse  `json:"category"`
	Token     string            `json:"token"`
}
