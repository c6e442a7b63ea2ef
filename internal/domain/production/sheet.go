// Package production agrupa los pedidos de un lote en la hoja de fabricación
// que se envía al proveedor.
package production

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/clubmerch-api/internal/domain/entity"
)

// Line total de unidades por producto y talla.
type Line struct {
	ProductID string
	Name      string
	Size      string
	Quantity  int
}

// Personalization una prenda con nombre o dorsal.
type Personalization struct {
	OrderGlobalID string
	Customer      string
	ProductName   string
	Size          string
	Name          string
	Number        string
	Quantity      int
}

// Sheet hoja de producción de un lote.
type Sheet struct {
	ClubName         string
	ClubCode         string
	BatchKey         string
	Status           string
	GeneratedAt      time.Time
	Orders           int
	Units            int
	Lines            []Line
	Personalizations []Personalization
}

var sizeRank = map[string]int{
	"2": 0, "4": 1, "6": 2, "8": 3, "10": 4, "12": 5, "14": 6, "16": 7,
	"XXS": 10, "XS": 11, "S": 12, "M": 13, "L": 14, "XL": 15, "XXL": 16, "2XL": 16, "3XL": 17, "XXXL": 17,
}

func rankOf(size string) int {
	if r, ok := sizeRank[strings.ToUpper(strings.TrimSpace(size))]; ok {
		return r
	}
	return 100
}

// Build construye la hoja. Los pedidos cancelados no se fabrican.
func Build(clubName, batchKey string, orders []*entity.Order) Sheet {
	sheet := Sheet{ClubName: clubName, BatchKey: batchKey}
	type key struct{ product, name, size string }
	idx := make(map[key]*Line)

	for _, o := range orders {
		if o.Status == entity.StatusCancelled {
			continue
		}
		sheet.Orders++
		for _, it := range o.Items {
			sheet.Units += it.Quantity
			k := key{it.ProductID, it.Name, strings.ToUpper(strings.TrimSpace(it.Size))}
			l, ok := idx[k]
			if !ok {
				l = &Line{ProductID: it.ProductID, Name: it.Name, Size: k.size}
				idx[k] = l
			}
			l.Quantity += it.Quantity

			if it.PersonalizationName != "" || it.PersonalizationNumber != "" {
				sheet.Personalizations = append(sheet.Personalizations, Personalization{
					OrderGlobalID: o.GlobalID,
					Customer:      o.CustomerName,
					ProductName:   it.Name,
					Size:          k.size,
					Name:          it.PersonalizationName,
					Number:        it.PersonalizationNumber,
					Quantity:      it.Quantity,
				})
			}
		}
	}

	for _, l := range idx {
		sheet.Lines = append(sheet.Lines, *l)
	}
	sort.Slice(sheet.Lines, func(i, j int) bool {
		a, b := sheet.Lines[i], sheet.Lines[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		if rankOf(a.Size) != rankOf(b.Size) {
			return rankOf(a.Size) < rankOf(b.Size)
		}
		return a.Size < b.Size
	})
	sort.SliceStable(sheet.Personalizations, func(i, j int) bool {
		return sheet.Personalizations[i].OrderGlobalID < sheet.Personalizations[j].OrderGlobalID
	})
	return sheet
}
