package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/mpetrovs/pricewatch/internal/client/models"
)

func (a *App) productsCmd(ctx context.Context) {
	products, err := a.catalog.Products(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(products) == 0 {
		fmt.Println("No tracked products. Use 'track' to add one.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tLOW\tHIGH\tLAST CHECKED")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%.2f\t%s\t%s\t%s\n",
			p.ID, p.Name, p.CurrentPrice,
			formatPrice(p.LowestPrice), formatPrice(p.HighestPrice),
			p.LastChecked.Format("2006-01-02 15:04"))
	}
	w.Flush()
}

func (a *App) productCmd(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: product <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Usage: product <id>")
		return
	}

	p, err := a.catalog.Product(ctx, id)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Printf("%s\n", p.Name)
	fmt.Printf("  url:           %s\n", p.URL)
	fmt.Printf("  current price: %.2f\n", p.CurrentPrice)
	fmt.Printf("  lowest/highest: %s / %s\n", formatPrice(p.LowestPrice), formatPrice(p.HighestPrice))
	if p.Notes != "" {
		fmt.Printf("  notes:         %s\n", p.Notes)
	}
	if p.LowerThreshold != nil || p.UpperThreshold != nil {
		fmt.Printf("  thresholds:    %s / %s\n", formatPrice(p.LowerThreshold), formatPrice(p.UpperThreshold))
	}
	fmt.Printf("  notify:        %t\n", p.Notify)
	fmt.Printf("  last checked:  %s\n", p.LastChecked.Format("2006-01-02 15:04"))
}

// trackCmd collects a track request interactively and submits it.
func (a *App) trackCmd(ctx context.Context) {
	url, err := getSimpleText(a.reader, "Product URL", os.Stdout)
	if err != nil || url == "" {
		fmt.Println("A product URL is required.")
		return
	}
	notes, _ := getSimpleText(a.reader, "Notes (optional)", os.Stdout)
	notifyAnswer, _ := getSimpleText(a.reader, "Notify on threshold? (y/n)", os.Stdout)
	lower, err := a.promptPrice("Lower threshold (blank for none)")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	upper, err := a.promptPrice("Upper threshold (blank for none)")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	req := models.TrackRequest{
		Product:        models.ProductRef{URL: url},
		Notes:          notes,
		Notify:         notifyAnswer == "y" || notifyAnswer == "yes",
		LowerThreshold: lower,
		UpperThreshold: upper,
	}

	p, err := a.catalog.Track(ctx, req)
	if err != nil {
		fmt.Println("Tracking failed:", err)
		return
	}
	fmt.Printf("Tracking %q (id %d) at %.2f\n", p.Name, p.ID, p.CurrentPrice)
}

func (a *App) promptPrice(prompt string) (*float64, error) {
	s, err := getSimpleText(a.reader, prompt, os.Stdout)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("not a price: %q", s)
	}
	return &v, nil
}

func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return strconv.FormatFloat(*p, 'f', 2, 64)
}
