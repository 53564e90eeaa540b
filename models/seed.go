package models

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"github.com/mmdatafocus/procurement_backend/utils"
	"gopkg.in/yaml.v3"
)

//go:embed seed/catalog.yaml
var defaultCatalogYAML []byte

// Catalog is the master data a store starts from and resets to.
type Catalog struct {
	Items     []InventoryItem
	Suppliers []Supplier
}

func (c Catalog) clone() Catalog {
	return Catalog{
		Items:     append([]InventoryItem(nil), c.Items...),
		Suppliers: append([]Supplier(nil), c.Suppliers...),
	}
}

type catalogFile struct {
	Items []struct {
		ID          string `yaml:"id"`
		Name        string `yaml:"name"`
		Price       string `yaml:"price"`
		Stock       int    `yaml:"stock"`
		SafetyStock int    `yaml:"safety_stock"`
		Unit        string `yaml:"unit"`
	} `yaml:"items"`
	Suppliers []struct {
		ID      string `yaml:"id"`
		Name    string `yaml:"name"`
		Address string `yaml:"address"`
		Phone   string `yaml:"phone"`
	} `yaml:"suppliers"`
}

func ParseCatalog(data []byte) (Catalog, error) {
	var raw catalogFile
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	var c Catalog
	seen := make(map[string]bool)
	for _, it := range raw.Items {
		if it.ID == "" || it.Name == "" {
			return Catalog{}, errors.New("catalog item requires id and name")
		}
		if seen[it.ID] {
			return Catalog{}, fmt.Errorf("duplicate catalog item %s", it.ID)
		}
		seen[it.ID] = true
		price, err := utils.ParseMoney(it.Price)
		if err != nil {
			return Catalog{}, fmt.Errorf("catalog item %s price: %w", it.ID, err)
		}
		c.Items = append(c.Items, InventoryItem{
			Item:        Item{ID: it.ID, Name: it.Name, Price: price},
			Stock:       it.Stock,
			SafetyStock: it.SafetyStock,
			Unit:        it.Unit,
		})
	}
	seenSuppliers := make(map[string]bool)
	for _, sup := range raw.Suppliers {
		if sup.ID == "" || sup.Name == "" {
			return Catalog{}, errors.New("catalog supplier requires id and name")
		}
		if seenSuppliers[sup.ID] {
			return Catalog{}, fmt.Errorf("duplicate catalog supplier %s", sup.ID)
		}
		seenSuppliers[sup.ID] = true
		c.Suppliers = append(c.Suppliers, Supplier{
			ID:      sup.ID,
			Name:    sup.Name,
			Address: sup.Address,
			Phone:   sup.Phone,
		})
	}
	return c, nil
}

// DefaultCatalog is the embedded demo catalog.
func DefaultCatalog() Catalog {
	c, err := ParseCatalog(defaultCatalogYAML)
	utils.ErrorPanic(err)
	return c
}

// LoadCatalog reads a catalog file, or returns the embedded one for an empty path.
func LoadCatalog(path string) (Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Catalog{}, err
	}
	return ParseCatalog(data)
}
