package backoffice

import (
	"github.com/shopspring/decimal"

	"github.com/niklaus/b2b-portal/internal/modules/account"
	"github.com/niklaus/b2b-portal/internal/modules/catalog"
	"github.com/niklaus/b2b-portal/internal/modules/tier"
	"github.com/niklaus/b2b-portal/internal/modules/unit"
)

type seedProduct struct {
	id  string
	req catalog.ProductRequest
}

type seedUnit struct {
	id  string
	req unit.UnitRequest
}

type seedAccount struct {
	id  string
	req account.UpsertRequest
}

var seedProducts = []seedProduct{
	{"1", catalog.ProductRequest{
		Name: "Shampoo Niklaus Pro 1L", Price: decimal.RequireFromString("89.90"), Stock: 150,
		Category: "Profissional", CategoryID: tier.CategoryProfessional,
		Image: "https://images.unsplash.com/photo-1535585209827-a15fcdbc4c2d?q=80&w=400",
	}},
	{"2", catalog.ProductRequest{
		Name: "Máscara Revitalizante 500g", Price: decimal.RequireFromString("75.00"), Stock: 80,
		Category: "Tratamento", CategoryID: tier.CategoryTreatment,
		Image: "https://images.unsplash.com/photo-1608248597279-f99d160bfcbc?q=80&w=400",
	}},
	{"3", catalog.ProductRequest{
		Name: "Kit Salão Master Premium", Price: decimal.RequireFromString("450.00"), Stock: 45,
		Category: "Kits", CategoryID: tier.CategoryKits,
		Image: "https://images.unsplash.com/photo-1590439471364-192aa70c0b53?q=80&w=400",
	}},
	{"4", catalog.ProductRequest{
		Name: "Sérum Ativador VIP", Price: decimal.RequireFromString("890.00"), Stock: 10,
		Category: "Exclusivo", CategoryID: tier.CategoryExclusive,
		Image: "https://images.unsplash.com/photo-1620916566398-39f1143ab7be?q=80&w=400",
	}},
}

var seedUnits = []seedUnit{
	{"c1", unit.UnitRequest{Name: "MATRIZ NIKLAUS", TaxID: "12.345.678/0001-90", Distributor: "Distribuidora Norte", TierID: tier.Basic}},
	{"c2", unit.UnitRequest{Name: "UNIDADE SUL", TaxID: "98.765.432/0001-21", Distributor: "Distribuidora Sul", TierID: tier.Premium}},
	{"c3", unit.UnitRequest{Name: "FRANQUIA VIP CENTRO", TaxID: "11.222.333/0001-44", Distributor: "Logística Direta", TierID: tier.VIP}},
}

var seedAccounts = []seedAccount{
	{"u-master", account.UpsertRequest{
		Name: "David Admin", Email: "davidbhmg147@gmail.com", Password: "135227",
		Role: account.RoleAdmin, UnitIDs: []string{"c1", "c2", "c3"},
	}},
	{"u1", account.UpsertRequest{
		Name: "Administrador Geral", Email: "admin@niklaus.com.br", Password: "admin",
		Role: account.RoleAdmin, UnitIDs: []string{"c1", "c2", "c3"},
	}},
	{"u2", account.UpsertRequest{
		Name: "João Representante", Email: "vendedor@test.com", Password: "123",
		Role: account.RoleRepresentative, UnitIDs: []string{"c1"},
	}},
}
