package telegram

import (
	"context"
	"fmt"
	"strings"

	"github.com/yourusername/product-catalog-client/internal/usecase"
)

type formStage int

const (
	formStageNeedName formStage = iota
	formStageNeedDescription
	formStageNeedPrice
)

// keepValue tahrirlashda joriy qiymatni saqlash belgisi
const keepValue = "-"

// formSession modal formaning bosqichma-bosqich varianti
type formSession struct {
	Stage   formStage
	Current usecase.FormInput // modalda turgan qiymatlar
	Input   usecase.FormInput
}

func newFormSession(m usecase.ModalView) *formSession {
	return &formSession{
		Stage:   formStageNeedName,
		Current: usecase.FormInput{Name: m.Name, Description: m.Description, Price: m.Price},
	}
}

// accept javobni joriy bosqichga yozish; forma to'lsa true
func (f *formSession) accept(text string) bool {
	value := strings.TrimSpace(text)
	switch f.Stage {
	case formStageNeedName:
		f.Input.Name = keepOr(value, f.Current.Name)
		f.Stage = formStageNeedDescription
	case formStageNeedDescription:
		f.Input.Description = keepOr(value, f.Current.Description)
		f.Stage = formStageNeedPrice
	case formStageNeedPrice:
		f.Input.Price = keepOr(value, f.Current.Price)
		return true
	}
	return false
}

func keepOr(value, current string) string {
	if value == keepValue && current != "" {
		return current
	}
	return value
}

// prompt joriy bosqich savoli
func (f *formSession) prompt() string {
	var field, current string
	switch f.Stage {
	case formStageNeedName:
		field, current = "name", f.Current.Name
	case formStageNeedDescription:
		field, current = "description", f.Current.Description
	case formStageNeedPrice:
		field, current = "price", f.Current.Price
	}
	if current != "" {
		return fmt.Sprintf("Enter product %s (current: <code>%s</code>, send \"-\" to keep it):", field, escape(current))
	}
	return fmt.Sprintf("Enter product %s:", field)
}

// startForm modal ochilgandan keyin formani boshlash
func (h *BotHandler) startForm(c *chat, intro string) {
	m := c.view.snapshot().Modal
	if !m.Open {
		return
	}

	form := newFormSession(m)
	c.mu.Lock()
	c.form = form
	c.mu.Unlock()

	if intro == "" {
		intro = modalPrompt(m)
	}
	h.sendHTML(c.id, intro+"\n"+form.prompt())
}

// handleFormInput forma bosqichiga javob
func (h *BotHandler) handleFormInput(ctx context.Context, c *chat, text string) {
	c.mu.Lock()
	form := c.form
	if form == nil {
		c.mu.Unlock()
		return
	}
	done := form.accept(text)
	in := form.Input
	next := form.prompt()
	if done {
		c.form = nil
	}
	c.mu.Unlock()

	if !done {
		h.sendHTML(c.id, next)
		return
	}

	_ = c.dash.SubmitForm(ctx, in)
	h.refresh(c)

	// modal ochiq qolgan bo'lsa yuborish muvaffaqiyatsiz, formani qaytadan boshlash
	h.startForm(c, "")
}

func (h *BotHandler) cancelForm(c *chat) {
	c.mu.Lock()
	c.form = nil
	c.mu.Unlock()

	c.dash.CloseModal()
	h.sendHTML(c.id, "Form cancelled.")
}
