package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
	"github.com/tu-usuario/stock-control/internal/domain/repository"
	"github.com/tu-usuario/stock-control/pkg/jwt"
)

// SetupUseCase onboarding: crea empresa, usuario admin, bodega principal y
// categoría inicial en una sola llamada, y entrega un token para empezar a
// operar de inmediato.
type SetupUseCase struct {
	companyRepo   repository.CompanyRepository
	userRepo      repository.UserRepository
	warehouseRepo repository.WarehouseRepository
	categoryRepo  repository.CategoryRepository
	jwtCfg        JWTConfig
}

// NewSetupUseCase construye el caso de uso.
func NewSetupUseCase(
	companyRepo repository.CompanyRepository,
	userRepo repository.UserRepository,
	warehouseRepo repository.WarehouseRepository,
	categoryRepo repository.CategoryRepository,
	jwtCfg JWTConfig,
) *SetupUseCase {
	return &SetupUseCase{
		companyRepo:   companyRepo,
		userRepo:      userRepo,
		warehouseRepo: warehouseRepo,
		categoryRepo:  categoryRepo,
		jwtCfg:        jwtCfg,
	}
}

// Setup ejecuta el onboarding. Devuelve domain.ErrDuplicate si el RUT ya
// está registrado y domain.ErrEmailAlreadyExists si el email ya existe.
func (uc *SetupUseCase) Setup(in dto.SetupRequest) (*dto.SetupResponse, error) {
	if existing, _ := uc.companyRepo.GetByRUT(in.CompanyRUT); existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, _ := uc.userRepo.FindByEmail(in.AdminEmail); existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.CompanyName,
		RUT:       in.CompanyRUT,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}

	adminName := in.AdminName
	if adminName == "" {
		adminName = in.AdminEmail
	}
	admin := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Email:        in.AdminEmail,
		PasswordHash: string(hash),
		Name:         adminName,
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(admin); err != nil {
		return nil, err
	}

	warehouseName := in.WarehouseName
	if warehouseName == "" {
		warehouseName = "Bodega Principal"
	}
	warehouse := &entity.Warehouse{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		Name:      warehouseName,
		IsMain:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.warehouseRepo.Create(warehouse); err != nil {
		return nil, err
	}

	category := &entity.Category{
		ID:        uuid.New().String(),
		CompanyID: company.ID,
		Name:      "General",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, admin.ID, admin.CompanyID, admin.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SetupResponse{
		Company: dto.CompanyResponse{
			ID:        company.ID,
			Name:      company.Name,
			RUT:       company.RUT,
			CreatedAt: company.CreatedAt,
			UpdatedAt: company.UpdatedAt,
		},
		Admin: dto.UserResponse{
			ID:        admin.ID,
			CompanyID: admin.CompanyID,
			Email:     admin.Email,
			Name:      admin.Name,
			Role:      admin.Role,
			Status:    admin.Status,
			CreatedAt: admin.CreatedAt,
			UpdatedAt: admin.UpdatedAt,
		},
		Warehouse: dto.WarehouseResponse{
			ID:        warehouse.ID,
			CompanyID: warehouse.CompanyID,
			Name:      warehouse.Name,
			Address:   warehouse.Address,
			IsMain:    warehouse.IsMain,
			CreatedAt: warehouse.CreatedAt,
			UpdatedAt: warehouse.UpdatedAt,
		},
		Category: dto.CategoryResponse{
			ID:        category.ID,
			CompanyID: category.CompanyID,
			Name:      category.Name,
			CreatedAt: category.CreatedAt,
			UpdatedAt: category.UpdatedAt,
		},
		Token: token,
	}, nil
}
