// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ledgerone/backend/config"
	"github.com/ledgerone/backend/internal/application/adapter"
	"github.com/ledgerone/backend/internal/domain/entity"
	"github.com/ledgerone/backend/internal/infra/dependency"
	"github.com/ledgerone/backend/internal/integration/persistence"
	"github.com/ledgerone/backend/internal/integration/persistence/model"
	"github.com/ledgerone/backend/test/integration/mock"
)

// testContext holds the per-scenario state.
type testContext struct {
	db     *mock.Db
	server *httptest.Server
	client *http.Client

	responseStatus int
	responseBody   []byte
}

// InitializeTestSuite sets up resources before any scenarios run.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
		db: mock.NewDb(map[string]any{
			"categories":   &model.CategoryModel{},
			"transactions": &model.TransactionModel{},
		}),
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		if err := test.db.Reset(); err != nil {
			return ctx, err
		}

		cfg := config.Load()
		injector := dependency.NewInjector(cfg, test.db.DbConn, nil)
		engine := injector.Router.Setup("test")
		test.server = httptest.NewServer(engine)

		test.responseStatus = 0
		test.responseBody = nil
		return ctx, nil
	})

	ctx.After(func(ctx context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if test.server != nil {
			test.server.Close()
		}
		return ctx, nil
	})

	// Seed steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^a category "([^"]*)" with monthly budget "([^"]*)"$`, test.aCategoryWithMonthlyBudget)
	ctx.Given(`^a category "([^"]*)" without budget$`, test.aCategoryWithoutBudget)
	ctx.Given(`^a transaction "([^"]*)" of "([^"]*)" on "([^"]*)" in category "([^"]*)"$`, test.aTransactionInCategory)
	ctx.Given(`^an uncategorized transaction "([^"]*)" of "([^"]*)" on "([^"]*)"$`, test.anUncategorizedTransaction)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I upload a CSV to "([^"]*)" with content:$`, test.iUploadACSVToWithContent)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response list should have (\d+) items$`, test.theResponseListShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) rows in "([^"]*)"$`, test.theDbShouldContainRowsIn)
}

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check answered %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) seedCategory(name string, budget *decimal.Decimal) error {
	repo := persistence.NewCategoryRepository(t.db.DbConn)
	category := entity.NewCategory(name, "", budget)
	if budget == nil {
		category.MonthlyBudget = nil
	}
	return repo.Create(context.Background(), category)
}

func (t *testContext) aCategoryWithMonthlyBudget(name, budget string) error {
	value, err := decimal.NewFromString(budget)
	if err != nil {
		return fmt.Errorf("bad budget %q: %w", budget, err)
	}
	return t.seedCategory(name, &value)
}

func (t *testContext) aCategoryWithoutBudget(name string) error {
	return t.seedCategory(name, nil)
}

func (t *testContext) findCategoryID(name string) (*uuid.UUID, error) {
	repo := persistence.NewCategoryRepository(t.db.DbConn)
	category, err := repo.FindByName(context.Background(), name)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, fmt.Errorf("category %q not seeded", name)
	}
	return &category.ID, nil
}

func (t *testContext) seedTransaction(description, amount, date string, categoryID *uuid.UUID) error {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return fmt.Errorf("bad date %q: %w", date, err)
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return fmt.Errorf("bad amount %q: %w", amount, err)
	}

	repo := persistence.NewTransactionRepository(t.db.DbConn)
	return repo.Create(context.Background(), entity.NewTransaction(day, description, value, categoryID))
}

func (t *testContext) aTransactionInCategory(description, amount, date, categoryName string) error {
	categoryID, err := t.findCategoryID(categoryName)
	if err != nil {
		return err
	}
	return t.seedTransaction(description, amount, date, categoryID)
}

func (t *testContext) anUncategorizedTransaction(description, amount, date string) error {
	return t.seedTransaction(description, amount, date, nil)
}

func (t *testContext) findTransactionID(description string) (*uuid.UUID, error) {
	repo := persistence.NewTransactionRepository(t.db.DbConn)
	transactions, err := repo.List(context.Background(), adapter.TransactionFilter{Query: description, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, fmt.Errorf("transaction %q not seeded", description)
	}
	return &transactions[0].ID, nil
}

// resolvePlaceholders substitutes {category:Name} and
// {transaction:Description} placeholders with seeded IDs so scenarios can
// address resources created in Given steps.
func (t *testContext) resolvePlaceholders(s string) (string, error) {
	lookups := map[string]func(string) (*uuid.UUID, error){
		"{category:":    t.findCategoryID,
		"{transaction:": t.findTransactionID,
	}

	for prefix, lookup := range lookups {
		for {
			start := strings.Index(s, prefix)
			if start < 0 {
				break
			}
			end := strings.Index(s[start:], "}")
			if end < 0 {
				return "", fmt.Errorf("unterminated placeholder in %q", s)
			}
			name := s[start+len(prefix) : start+end]
			id, err := lookup(name)
			if err != nil {
				return "", err
			}
			s = s[:start] + id.String() + s[start+end+1:]
		}
	}
	return s, nil
}

func (t *testContext) doRequest(method, path string, body io.Reader, contentType string) error {
	resolved, err := t.resolvePlaceholders(path)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(method, t.server.URL+resolved, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.responseStatus = resp.StatusCode
	t.responseBody = raw
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.doRequest(method, path, nil, "")
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	content, err := t.resolvePlaceholders(body.Content)
	if err != nil {
		return err
	}
	return t.doRequest(method, path, strings.NewReader(content), "application/json")
}

func (t *testContext) iUploadACSVToWithContent(path string, content *godog.DocString) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "import.csv")
	if err != nil {
		return err
	}
	if _, err := part.Write([]byte(content.Content)); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	return t.doRequest(http.MethodPost, path, &buf, writer.FormDataContentType())
}

func (t *testContext) theResponseStatusShouldBe(expected int) error {
	if t.responseStatus != expected {
		return fmt.Errorf("expected status %d, got %d (body: %s)", expected, t.responseStatus, t.responseBody)
	}
	return nil
}

func (t *testContext) theResponseShouldContain(substring string) error {
	if !strings.Contains(string(t.responseBody), substring) {
		return fmt.Errorf("response %s does not contain %q", t.responseBody, substring)
	}
	return nil
}

// lookupField walks a dotted path through the decoded response. Numeric
// segments index into arrays.
func (t *testContext) lookupField(path string) (any, error) {
	var decoded any
	if err := json.Unmarshal(t.responseBody, &decoded); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}

	current := decoded
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			value, ok := node[segment]
			if !ok {
				return nil, fmt.Errorf("field %q not found in %s", path, t.responseBody)
			}
			current = value
		case []any:
			index, err := strconv.Atoi(segment)
			if err != nil || index < 0 || index >= len(node) {
				return nil, fmt.Errorf("bad array index %q in path %q", segment, path)
			}
			current = node[index]
		default:
			return nil, fmt.Errorf("cannot descend into %q at %q", path, segment)
		}
	}
	return current, nil
}

func (t *testContext) theResponseFieldShouldBe(path, expected string) error {
	value, err := t.lookupField(path)
	if err != nil {
		return err
	}

	expected, err = t.resolvePlaceholders(expected)
	if err != nil {
		return err
	}

	var actual string
	switch v := value.(type) {
	case nil:
		actual = "null"
	case float64:
		actual = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		actual = strconv.FormatBool(v)
	default:
		actual = fmt.Sprintf("%v", v)
	}

	if actual != expected {
		return fmt.Errorf("expected field %q to be %q, got %q", path, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(path string) error {
	_, err := t.lookupField(path)
	return err
}

func (t *testContext) theResponseListShouldHaveItems(expected int) error {
	var decoded []any
	if err := json.Unmarshal(t.responseBody, &decoded); err != nil {
		return fmt.Errorf("response is not a JSON list: %s", t.responseBody)
	}
	if len(decoded) != expected {
		return fmt.Errorf("expected %d items, got %d", expected, len(decoded))
	}
	return nil
}

func (t *testContext) theDbShouldContainRowsIn(expected int, table string) error {
	count, err := t.db.Count(table)
	if err != nil {
		return err
	}
	if count != int64(expected) {
		return fmt.Errorf("expected %d rows in %s, got %d", expected, table, count)
	}
	return nil
}
