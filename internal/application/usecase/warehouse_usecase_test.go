package usecase_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/stock-control/internal/application/dto"
	"github.com/tu-usuario/stock-control/internal/application/usecase"
	"github.com/tu-usuario/stock-control/internal/domain"
	"github.com/tu-usuario/stock-control/internal/domain/entity"
)

const (
	companyID      = "00000000-0000-0000-0000-00000000000a"
	otherCompany   = "00000000-0000-0000-0000-00000000000b"
	mainWarehouse  = "00000000-0000-0000-0000-000000000030"
	otherWarehouse = "00000000-0000-0000-0000-000000000031"
)

func seedWarehouse(repo *fakeWarehouseRepo, id, company string, isMain bool) {
	now := time.Now()
	repo.warehouses[id] = &entity.Warehouse{
		ID: id, CompanyID: company, Name: "Bodega " + id[len(id)-2:],
		IsMain: isMain, CreatedAt: now, UpdatedAt: now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Bodega principal única por empresa
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouse_CrearPrincipalDesmarcaLaAnterior(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)
	seedWarehouse(repo, mainWarehouse, companyID, true)

	out, err := uc.Create(companyID, dto.CreateWarehouseRequest{
		Name:   "Sucursal Sur",
		IsMain: true,
	})
	require.NoError(t, err)
	assert.True(t, out.IsMain)

	// La anterior quedó desmarcada: a lo más una principal por empresa.
	assert.False(t, repo.warehouses[mainWarehouse].IsMain)
	principales := 0
	for _, w := range repo.warehouses {
		if w.CompanyID == companyID && w.IsMain {
			principales++
		}
	}
	assert.Equal(t, 1, principales)
}

func TestWarehouse_UpdatePrincipalDesmarcaLaAnterior(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)
	seedWarehouse(repo, mainWarehouse, companyID, true)
	seedWarehouse(repo, otherWarehouse, companyID, false)

	isMain := true
	out, err := uc.Update(companyID, otherWarehouse, dto.UpdateWarehouseRequest{IsMain: &isMain})
	require.NoError(t, err)
	assert.True(t, out.IsMain)
	assert.False(t, repo.warehouses[mainWarehouse].IsMain)
}

func TestWarehouse_PrincipalDeOtraEmpresaNoSeToca(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)
	seedWarehouse(repo, otherWarehouse, otherCompany, true)

	_, err := uc.Create(companyID, dto.CreateWarehouseRequest{Name: "Central", IsMain: true})
	require.NoError(t, err)

	// ClearMain opera por empresa: la principal ajena sigue intacta.
	assert.True(t, repo.warehouses[otherWarehouse].IsMain)
}

// ──────────────────────────────────────────────────────────────────────────────
// Guarda de eliminación: bodega con stock no se borra
// ──────────────────────────────────────────────────────────────────────────────

func TestWarehouse_EliminarConStockRechazado(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)
	seedWarehouse(repo, mainWarehouse, companyID, true)
	repo.stockPositivo[mainWarehouse] = true

	err := uc.Delete(companyID, mainWarehouse)
	require.ErrorIs(t, err, domain.ErrWarehouseHasStock)
	assert.Contains(t, repo.warehouses, mainWarehouse, "la bodega debe seguir existiendo")
}

func TestWarehouse_EliminarSinStock(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)
	seedWarehouse(repo, otherWarehouse, companyID, false)

	require.NoError(t, uc.Delete(companyID, otherWarehouse))
	assert.NotContains(t, repo.warehouses, otherWarehouse)
}

func TestWarehouse_EliminarAjenaEsInvisible(t *testing.T) {
	repo := newFakeWarehouseRepo()
	uc := usecase.NewWarehouseUseCase(repo)
	seedWarehouse(repo, otherWarehouse, otherCompany, false)

	err := uc.Delete(companyID, otherWarehouse)
	require.ErrorIs(t, err, domain.ErrNotFound)
}
