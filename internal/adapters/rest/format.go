package rest

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice форматирует цену с разделителями тысяч ("1,250,000 SAR").
// Для отсутствующей цены возвращает заглушку.
func FormatPrice(price *float64) string {
	if price == nil {
		return "—"
	}
	if *price == float64(int64(*price)) {
		return pricePrinter.Sprintf("%d SAR", int64(*price))
	}
	return pricePrinter.Sprintf("%.2f SAR", *price)
}

// FormatArea форматирует площадь в квадратных метрах.
func FormatArea(area *float64) string {
	if area == nil {
		return "—"
	}
	if *area == float64(int64(*area)) {
		return pricePrinter.Sprintf("%d м²", int64(*area))
	}
	return pricePrinter.Sprintf("%.1f м²", *area)
}

// FormatDate приводит дату к виду для карточки. Нулевое время - пустая строка.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02.01.2006")
}

// StatusBadgeClass возвращает CSS-класс бейджа по статусу элемента.
// Неизвестные статусы получают нейтральный класс.
func StatusBadgeClass(status string) string {
	switch status {
	case "active", "available":
		return "badge-success"
	case "pending", "under_review":
		return "badge-warning"
	case "sold", "closed", "expired":
		return "badge-secondary"
	case "rejected":
		return "badge-danger"
	default:
		return "badge-neutral"
	}
}

// formatCount - счетчик результатов для шапки листинга.
func formatCount(total int) string {
	return fmt.Sprintf("%s результатов", pricePrinter.Sprintf("%d", total))
}
