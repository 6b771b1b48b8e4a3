package models

// AllModels lists every entity in migration order; foreign-key targets come
// before their referrers. Used by gorm AutoMigrate in main and the test
// harness.
func AllModels() []any {
	return []any{
		&User{},
		&UserSession{},
		&Carrier{},
		&Contract{},
		&Depot{},
		&DepotNameMapping{},
		&Route{},
		&RouteDepotHistory{},
		&RouteCarrierHistory{},
		&PriceConfig{},
		&FixRate{},
		&KmRate{},
		&DepoRate{},
		&LinehaulRate{},
		&BonusRate{},
		&TransportPlan{},
		&PlanRouteRow{},
		&Proof{},
		&ProofRouteDetail{},
		&ProofLinehaulDetail{},
		&ProofDepoDetail{},
		&ProofDailyDetail{},
		&Invoice{},
	}
}
