package browser

import (
	"context"
	"fmt"
	"strings"

	"judicial_scraper/domain/entities"
	"judicial_scraper/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
)

// Wait budgets in milliseconds: the long one for state-changing actions
// (navigation, dropdown open, modal appearance), the short one for
// quick visibility checks.
const (
	longWait  = 30000.0
	shortWait = 5000.0
)

// Selectors for the consultation form. The form is a Vuetify app, so
// dropdowns are div "buttons" owning a detached list element and the
// real options carry the v-list-item__title class.
const (
	allProcessesLabel = "label[for='input-67']"
	personTypeListID  = "list-72"
	personTypeOption  = "Natural"
	nameInput         = "#input-78"
	searchButton      = "button[aria-label='Consultar por nombre o razón social']"
	resultsModal      = "div.v-dialog__content.v-dialog__content--active[role='dialog'][aria-modal='true']"
	modalMessage      = "p.pl-1"
	resultsTable      = "#ResultadoConsulta"
	backButton        = "button.leading"
	optionTitle       = ".v-list-item__title"
)

type formDriver struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	logger  *logrus.Logger
}

// NewFormDriver - launches chromium and returns a driver for the form
func NewFormDriver(headless bool, logger *logrus.Logger) (interfaces.UIDriver, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	chromium, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
		Args: []string{
			"--window-size=1400,800",
			"--disable-gpu",
			"--no-sandbox",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	browserCtx, err := chromium.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  1400,
			Height: 800,
		},
	})
	if err != nil {
		chromium.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := browserCtx.NewPage()
	if err != nil {
		browserCtx.Close()
		chromium.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &formDriver{
		pw:      pw,
		browser: chromium,
		context: browserCtx,
		page:    page,
		logger:  logger,
	}, nil
}

// Navigate - loads the consultation form
func (d *formDriver) Navigate(ctx context.Context, url string) error {
	_, err := d.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(longWait),
	})
	return classify("navigate", err)
}

// PrepareForm - primes the fresh form: all-processes option, person
// type Natural, and the name field
func (d *formDriver) PrepareForm(ctx context.Context, searchName string) error {
	if err := d.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(longWait),
	}); err != nil {
		return classify("page load", err)
	}

	radio := d.page.Locator(allProcessesLabel)
	if err := d.waitVisible(radio, longWait); err != nil {
		return classify("all-processes option", err)
	}
	if err := radio.Click(); err != nil {
		return classify("all-processes option", err)
	}

	// Vuetify swallows plain clicks on these controls now and then, so
	// dropdown clicks are evaluated inside the page.
	personType := d.page.Locator(activatorSelector(personTypeListID))
	if err := d.waitVisible(personType, longWait); err != nil {
		return classify("person type dropdown", err)
	}
	if _, err := personType.Evaluate("el => el.click()", nil); err != nil {
		return classify("person type dropdown", err)
	}

	natural := d.page.Locator("#"+personTypeListID+" "+optionTitle, playwright.PageLocatorOptions{
		HasText: personTypeOption,
	}).First()
	if err := d.waitVisible(natural, shortWait); err != nil {
		return classify("person type option", err)
	}
	if _, err := natural.Evaluate("el => el.click()", nil); err != nil {
		return classify("person type option", err)
	}

	name := d.page.Locator(nameInput)
	if err := d.waitVisible(name, longWait); err != nil {
		return classify("name field", err)
	}
	if err := name.Clear(); err != nil {
		return classify("name field", err)
	}
	if err := name.Fill(searchName); err != nil {
		return classify("name field", err)
	}

	return nil
}

// ReadOptions - opens the level's dropdown and reads the rendered list
func (d *formDriver) ReadOptions(ctx context.Context, level entities.Level) ([]entities.Option, error) {
	list := d.page.Locator("#" + level.ListID())

	// Reopening an already open menu would close it instead.
	open, err := list.IsVisible()
	if err != nil {
		return nil, classify(level.Name()+" option list", err)
	}
	if !open {
		activator := d.page.Locator(activatorSelector(level.ListID()))
		if err := d.waitVisible(activator, longWait); err != nil {
			return nil, classify(level.Name()+" dropdown", err)
		}
		if _, err := activator.Evaluate("el => el.click()", nil); err != nil {
			return nil, classify(level.Name()+" dropdown", err)
		}
		if err := d.waitVisible(list, longWait); err != nil {
			return nil, classify(level.Name()+" option list", err)
		}
	}

	texts, err := list.Locator(optionTitle).AllInnerTexts()
	if err != nil {
		return nil, classify(level.Name()+" options", err)
	}

	options := make([]entities.Option, 0, len(texts))
	for i, text := range texts {
		options = append(options, entities.Option{Index: i, Text: strings.TrimSpace(text)})
	}
	return options, nil
}

// SelectOption - clicks the option at index in the open dropdown
func (d *formDriver) SelectOption(ctx context.Context, level entities.Level, index int) (string, error) {
	list := d.page.Locator("#" + level.ListID())
	item := list.Locator(optionTitle).Nth(index)

	if err := d.waitVisible(item, shortWait); err != nil {
		return "", classify(level.Name()+" option", err)
	}
	text, err := item.InnerText()
	if err != nil {
		return "", classify(level.Name()+" option", err)
	}
	if _, err := item.Evaluate("el => el.click()", nil); err != nil {
		return "", classify(level.Name()+" option", err)
	}

	// The menu should fold away once an option is taken; a leftover
	// menu is worth a warning but the selection already happened.
	if err := list.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(shortWait),
	}); err != nil {
		d.logger.Warnf("Dropdown list %s did not close after selection", level.ListID())
	}

	return strings.TrimSpace(text), nil
}

// SubmitSearch - clicks the consult button for the current path
func (d *formDriver) SubmitSearch(ctx context.Context) error {
	button := d.page.Locator(searchButton)
	if err := d.waitVisible(button, longWait); err != nil {
		return classify("search button", err)
	}
	return classify("search button", button.Click())
}

// ModalMessage - waits for the response modal and reads its message
func (d *formDriver) ModalMessage(ctx context.Context) (string, error) {
	modal := d.page.Locator(resultsModal)
	if err := d.waitVisible(modal, longWait); err != nil {
		return "", classify("results modal", err)
	}

	message, err := modal.Locator(modalMessage).InnerText()
	if err != nil {
		return "", classify("modal message", err)
	}
	return strings.TrimSpace(message), nil
}

// ReadResultRows - reads the cells of every data row, header excluded
func (d *formDriver) ReadResultRows(ctx context.Context) ([][]string, error) {
	table := d.page.Locator(resultsTable)
	if err := table.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(longWait),
	}); err != nil {
		return nil, classify("results table", err)
	}

	rows := table.Locator("tr")
	count, err := rows.Count()
	if err != nil {
		return nil, classify("results table", err)
	}

	out := make([][]string, 0, count)
	for i := 1; i < count; i++ {
		cells, err := rows.Nth(i).Locator("td").AllInnerTexts()
		if err != nil {
			return nil, classify("results table row", err)
		}
		out = append(out, cells)
	}
	return out, nil
}

// DismissResults - clicks back and waits for the modal to go away
func (d *formDriver) DismissResults(ctx context.Context) error {
	back := d.page.Locator(backButton)
	if err := d.waitVisible(back, longWait); err != nil {
		return classify("back button", err)
	}
	if _, err := back.Evaluate("el => el.click()", nil); err != nil {
		return classify("back button", err)
	}

	modal := d.page.Locator(resultsModal)
	if err := modal.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateHidden,
		Timeout: playwright.Float(longWait),
	}); err != nil {
		d.logger.Warn("Results modal did not close after clicking back")
	}

	return nil
}

// Close - closes the browser, tolerating already-closed targets
func (d *formDriver) Close() error {
	var closeErr error

	if d.context != nil {
		if err := d.context.Close(); err != nil && !isAlreadyClosed(err) {
			closeErr = fmt.Errorf("failed to close context: %w", err)
		}
		d.context = nil
	}

	if d.browser != nil {
		if err := d.browser.Close(); err != nil && !isAlreadyClosed(err) {
			if closeErr != nil {
				closeErr = fmt.Errorf("%v; failed to close browser: %w", closeErr, err)
			} else {
				closeErr = fmt.Errorf("failed to close browser: %w", err)
			}
		}
		d.browser = nil
	}

	if d.pw != nil {
		if err := d.pw.Stop(); err != nil && closeErr == nil {
			closeErr = fmt.Errorf("failed to stop playwright: %w", err)
		}
		d.pw = nil
	}

	if closeErr == nil {
		d.logger.Info("Browser closed successfully")
	}
	return closeErr
}

func (d *formDriver) waitVisible(loc playwright.Locator, timeout float64) error {
	return loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(timeout),
	})
}

// activatorSelector - the div button owning the given option list
func activatorSelector(listID string) string {
	return fmt.Sprintf("div[role='button'][aria-haspopup='listbox'][aria-owns='%s']", listID)
}

// classify maps playwright failures onto the engine's fault classes so
// the core can decide between retry, backtrack and recovery.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return fmt.Errorf("%s: %w (%v)", op, entities.ErrTimeout, err)
	case strings.Contains(msg, "not attached") || strings.Contains(msg, "stale"):
		return fmt.Errorf("%s: %w (%v)", op, entities.ErrStaleElement, err)
	default:
		return fmt.Errorf("%s: %w (%v)", op, entities.ErrElementNotFound, err)
	}
}

// isAlreadyClosed - errors raised when the target went away first
func isAlreadyClosed(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "closed") || strings.Contains(msg, "target closed")
}
