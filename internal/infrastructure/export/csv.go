package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/Rushi-chippa/SalesERPFullProject/internal/domain/report"
)

// ErrNotTabular is returned when CSV is requested for a report that is not a single table
var ErrNotTabular = errors.New("report has no tabular form, use json or yaml")

func encodeCSV(w io.Writer, v any) error {
	header, rows, err := table(v)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

func table(v any) ([]string, [][]string, error) {
	switch r := v.(type) {
	case report.Leaderboard:
		return salesmanTable(r.Entries)
	case *report.Leaderboard:
		return salesmanTable(r.Entries)
	case []report.SalesmanPerformance:
		return salesmanTable(r)
	case report.SalesReport:
		return salesmanTable(r.Salesmen)
	case *report.SalesReport:
		return salesmanTable(r.Salesmen)
	case []report.ProductSalesRanking:
		return productTable(r)
	case []report.TrendPoint:
		return trendTable(r)
	case []report.CategoryBreakdown:
		return categoryTable(r)
	}
	return nil, nil, fmt.Errorf("%w: %T", ErrNotTabular, v)
}

func salesmanTable(rows []report.SalesmanPerformance) ([]string, [][]string, error) {
	header := []string{"rank", "salesman_id", "name", "region", "revenue", "quantity", "deals", "avg_deal_size", "target", "achieved_percent"}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			strconv.Itoa(r.Rank),
			r.SalesmanID.String(),
			r.Name,
			r.Region,
			r.Revenue.StringFixed(2),
			strconv.FormatInt(r.Quantity, 10),
			strconv.FormatInt(r.Deals, 10),
			r.AvgDealSize.StringFixed(2),
			r.Target.StringFixed(2),
			r.AchievedPercent.StringFixed(2),
		}
	}
	return header, out, nil
}

func productTable(rows []report.ProductSalesRanking) ([]string, [][]string, error) {
	header := []string{"rank", "product_id", "product_name", "category", "total_quantity", "total_amount", "order_count"}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{
			strconv.Itoa(r.Rank),
			r.ProductID.String(),
			r.ProductName,
			r.CategoryName,
			strconv.FormatInt(r.TotalQuantity, 10),
			r.TotalAmount.StringFixed(2),
			strconv.FormatInt(r.OrderCount, 10),
		}
	}
	return header, out, nil
}

func trendTable(rows []report.TrendPoint) ([]string, [][]string, error) {
	header := []string{"period", "revenue", "quantity", "deals"}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Period, r.Revenue.StringFixed(2), strconv.FormatInt(r.Quantity, 10), strconv.FormatInt(r.Deals, 10)}
	}
	return header, out, nil
}

func categoryTable(rows []report.CategoryBreakdown) ([]string, [][]string, error) {
	header := []string{"category", "revenue", "quantity", "deals"}
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{r.Category, r.Revenue.StringFixed(2), strconv.FormatInt(r.Quantity, 10), strconv.FormatInt(r.Deals, 10)}
	}
	return header, out, nil
}
