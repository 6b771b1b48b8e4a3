package testing

import (
	"fmt"
	"math/rand"
	"time"

	businessflow "github.com/JakubKrejcir/alza-cost-control/business_flow"
	"github.com/JakubKrejcir/alza-cost-control/models"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// TestFixtures provides helper methods for creating test data
type TestFixtures struct {
	DB *TestDB
}

// NewTestFixtures creates a new test fixtures instance
func NewTestFixtures(db *TestDB) *TestFixtures {
	return &TestFixtures{DB: db}
}

// TestUserPassword is the plaintext password every fixture user is created with
const TestUserPassword = "TestPass123!"

// CreateTestUser creates an active user with a unique username
func (tf *TestFixtures) CreateTestUser(role models.UserRole) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(TestUserPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     fmt.Sprintf("user_%d_%d", time.Now().UnixNano(), rand.Intn(10000)),
		PasswordHash: string(hashedPassword),
		Role:         role,
		IsActive:     true,
	}

	if err := tf.DB.DB.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create test user: %w", err)
	}

	return user, nil
}

// CreateTestCarrier creates an active carrier with a unique name
func (tf *TestFixtures) CreateTestCarrier() (*models.Carrier, error) {
	name := fmt.Sprintf("Doprava Test %d s.r.o.", rand.Intn(1000000))

	carrier := &models.Carrier{
		Name:          name,
		CanonicalName: businessflow.CanonicalName(name),
		IsActive:      true,
	}

	if err := tf.DB.DB.Create(carrier).Error; err != nil {
		return nil, fmt.Errorf("failed to create test carrier: %w", err)
	}

	return carrier, nil
}

// CreateTestDepot creates a distribution depot operated by the given carrier
func (tf *TestFixtures) CreateTestDepot(carrierID uint, validFrom time.Time) (*models.Depot, error) {
	code := fmt.Sprintf("D%05d", rand.Intn(100000))

	depot := &models.Depot{
		Name:         fmt.Sprintf("Depo %s", code),
		Code:         code,
		DepotType:    models.DepotTypeDistribution,
		OperatorType: models.OperatorTypeCarrier,
		CarrierID:    &carrierID,
		ValidFrom:    &validFrom,
	}

	if err := tf.DB.DB.Create(depot).Error; err != nil {
		return nil, fmt.Errorf("failed to create test depot: %w", err)
	}

	return depot, nil
}

// CreateTestNameMapping binds a raw start-location string to a depot
func (tf *TestFixtures) CreateTestNameMapping(rawName string, depotID uint) (*models.DepotNameMapping, error) {
	mapping := &models.DepotNameMapping{
		RawName: rawName,
		DepotID: depotID,
	}

	if err := tf.DB.DB.Create(mapping).Error; err != nil {
		return nil, fmt.Errorf("failed to create test name mapping: %w", err)
	}

	return mapping, nil
}

// CreateTestRoute creates an active route with a unique name
func (tf *TestFixtures) CreateTestRoute(region string) (*models.Route, error) {
	route := &models.Route{
		Name:     fmt.Sprintf("%s %c", region, 'A'+rune(rand.Intn(26))),
		Region:   &region,
		IsActive: true,
	}

	if err := tf.DB.DB.Create(route).Error; err != nil {
		return nil, fmt.Errorf("failed to create test route: %w", err)
	}

	return route, nil
}

// CreateTestPriceConfig creates an active distribution price config with one fix
// rate, one km rate and a two-band bonus ladder
func (tf *TestFixtures) CreateTestPriceConfig(carrierID uint, validFrom time.Time) (*models.PriceConfig, error) {
	config := &models.PriceConfig{
		CarrierID: carrierID,
		Type:      models.PriceConfigTypeDistribution,
		ValidFrom: validFrom,
		IsActive:  true,
	}

	if err := tf.DB.DB.Create(config).Error; err != nil {
		return nil, fmt.Errorf("failed to create test price config: %w", err)
	}

	fix := &models.FixRate{
		PriceConfigID: config.ID,
		RouteType:     "dodavka standard",
		Rate:          decimal.NewFromInt(1500),
	}
	if err := tf.DB.DB.Create(fix).Error; err != nil {
		return nil, fmt.Errorf("failed to create test fix rate: %w", err)
	}

	km := &models.KmRate{
		PriceConfigID: config.ID,
		Rate:          decimal.NewFromFloat(9.50),
	}
	if err := tf.DB.DB.Create(km).Error; err != nil {
		return nil, fmt.Errorf("failed to create test km rate: %w", err)
	}

	topMax := decimal.NewFromInt(100)
	bonuses := []*models.BonusRate{
		{
			PriceConfigID: config.ID,
			MinPercent:    decimal.NewFromInt(95),
			MaxPercent:    &topMax,
			Amount:        decimal.NewFromInt(10000),
		},
		{
			PriceConfigID: config.ID,
			MinPercent:    decimal.NewFromInt(98),
			Amount:        decimal.NewFromInt(20000),
		},
	}
	for _, bonus := range bonuses {
		if err := tf.DB.DB.Create(bonus).Error; err != nil {
			return nil, fmt.Errorf("failed to create test bonus rate: %w", err)
		}
	}

	config.FixRates = []models.FixRate{*fix}
	config.KmRates = []models.KmRate{*km}
	return config, nil
}

// CreateTestPlan creates a transport plan with the given rows attached
func (tf *TestFixtures) CreateTestPlan(carrierID uint, validFrom time.Time, rows []models.PlanRouteRow) (*models.TransportPlan, error) {
	plan := &models.TransportPlan{
		CarrierID: carrierID,
		ValidFrom: validFrom,
	}

	if err := tf.DB.DB.Create(plan).Error; err != nil {
		return nil, fmt.Errorf("failed to create test plan: %w", err)
	}

	for i := range rows {
		rows[i].PlanID = plan.ID
		if err := tf.DB.DB.Create(&rows[i]).Error; err != nil {
			return nil, fmt.Errorf("failed to create test plan row: %w", err)
		}
	}

	plan.Rows = rows
	return plan, nil
}

// CreateTestProof creates a proof for the given carrier and period
func (tf *TestFixtures) CreateTestProof(carrierID uint, period string, total decimal.Decimal) (*models.Proof, error) {
	proof := &models.Proof{
		CarrierID:   carrierID,
		Period:      period,
		TotalAmount: total,
		FixAmount:   total,
	}

	if err := tf.DB.DB.Create(proof).Error; err != nil {
		return nil, fmt.Errorf("failed to create test proof: %w", err)
	}

	return proof, nil
}

// CreateTestInvoice creates an invoice with a unique invoice number
func (tf *TestFixtures) CreateTestInvoice(carrierID uint, period string, amount decimal.Decimal) (*models.Invoice, error) {
	invoice := &models.Invoice{
		CarrierID:     carrierID,
		InvoiceNumber: fmt.Sprintf("FV-%d-%d", time.Now().UnixNano(), rand.Intn(10000)),
		Period:        period,
		Amount:        amount,
	}

	if err := tf.DB.DB.Create(invoice).Error; err != nil {
		return nil, fmt.Errorf("failed to create test invoice: %w", err)
	}

	return invoice, nil
}

// CreateTestContract creates a contract with a unique contract number
func (tf *TestFixtures) CreateTestContract(carrierID uint, counterpartyName string, signedAt time.Time) (*models.Contract, error) {
	contract := &models.Contract{
		CarrierID:        carrierID,
		ContractNumber:   fmt.Sprintf("SML-%d-%d", time.Now().UnixNano(), rand.Intn(10000)),
		CounterpartyName: counterpartyName,
		SignedAt:         signedAt,
	}

	if err := tf.DB.DB.Create(contract).Error; err != nil {
		return nil, fmt.Errorf("failed to create test contract: %w", err)
	}

	return contract, nil
}
