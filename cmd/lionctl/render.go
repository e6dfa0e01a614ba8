package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"lionhearts/internal/handlers/rest/dto"
)

const timeLayout = "Jan 2 15:04"

func renderOrders(w io.Writer, orders []dto.AdminOrder) error {
	rows := make([][]string, 0, len(orders))
	for _, o := range orders {
		rows = append(rows, []string{
			o.ID,
			o.OrderNumber,
			o.Status,
			o.PaymentStatus,
			o.PackageType,
			formatPrice(o.PriceCents),
			o.DeliveryTime,
			location(o),
			o.AddresseeName,
			sender(o),
			o.CreatedAt.Local().Format(timeLayout),
		})
	}
	err := renderTable(w, rows, "ID", "Order", "Status", "Payment", "Package", "Price", "Slot", "Location", "To", "From", "Placed")
	if err != nil {
		return fmt.Errorf("render orders: %w", err)
	}

	_, err = fmt.Fprintf(w, "%d order(s)\n", len(orders))
	return err
}

func renderAudit(w io.Writer, entries []dto.AuditEntry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "no changes recorded")
		return err
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			e.ChangedAt.Local().Format(time.DateTime),
			e.Field,
			deref(e.OldValue),
			deref(e.NewValue),
		})
	}
	if err := renderTable(w, rows, "Changed", "Field", "Old", "New"); err != nil {
		return fmt.Errorf("render audit: %w", err)
	}
	return nil
}

func renderCatalog(w io.Writer, catalog *dto.CatalogResponse) error {
	if _, err := fmt.Fprintf(w, "Event date: %s\n", catalog.EventDate); err != nil {
		return err
	}

	packageRows := make([][]string, 0, len(catalog.Packages))
	for _, p := range catalog.Packages {
		packageRows = append(packageRows, []string{p.ID, p.Label, formatPrice(p.PriceCents), strconv.FormatBool(p.RequiresNote)})
	}
	if err := renderTable(w, packageRows, "Package", "Label", "Price", "Note required"); err != nil {
		return fmt.Errorf("render catalog: %w", err)
	}

	slotRows := make([][]string, 0, len(catalog.TimeSlots))
	for _, s := range catalog.TimeSlots {
		slotRows = append(slotRows, []string{s})
	}
	if err := renderTable(w, slotRows, "Delivery slot"); err != nil {
		return fmt.Errorf("render catalog: %w", err)
	}

	_, err := fmt.Fprintf(w, "%d delivery locations\n", len(catalog.Dorms))
	return err
}

func renderTable(w io.Writer, rows [][]string, header ...any) error {
	table := tablewriter.NewWriter(w)
	table.Header(header...)
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

func formatPrice(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func location(o dto.AdminOrder) string {
	if o.OtherLocation != nil {
		return *o.OtherLocation
	}
	return o.Dorm + " " + o.Room
}

func sender(o dto.AdminOrder) string {
	if o.IsAnonymous {
		return "(anonymous)"
	}
	return deref(o.SenderName)
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
