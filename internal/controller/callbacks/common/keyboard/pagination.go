package keyboard

import (
	"fmt"

	"github.com/go-telegram/bot/models"
)

// PaginationButtons создаёт ряд кнопок пагинации
// prefix - префикс для callback (например "gen:")
// current - текущая позиция (0-based)
// total - всего позиций
func PaginationButtons(prefix string, current, total int) []models.InlineKeyboardButton {
	if total <= 1 {
		return nil
	}

	var buttons []models.InlineKeyboardButton

	if current > 0 {
		buttons = append(buttons, Button("⬅️", fmt.Sprintf("%s%d", prefix, current-1)))
	}

	buttons = append(buttons, Button(fmt.Sprintf("📄 %d/%d", current+1, total), Noop))

	if current < total-1 {
		buttons = append(buttons, Button("➡️", fmt.Sprintf("%s%d", prefix, current+1)))
	}

	return buttons
}

// AddPagination добавляет пагинацию к builder
func (b *Builder) AddPagination(prefix string, current, total int) *Builder {
	return b.Row(PaginationButtons(prefix, current, total)...)
}
