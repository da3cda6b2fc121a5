package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/config"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/dtos"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/finance"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/repositories"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/utils"
)

// Fallback figures used by the summary when a section has not been
// saved yet, so a fresh analysis still renders a dashboard.
const (
	fallbackAnnualRevenue     = 85000.0
	fallbackAnnualMaintenance = 18500.0
)

type AnalysisService interface {
	Create(ctx context.Context, userID uuid.UUID, req dtos.CreateAnalysisRequest) (*models.PropertyAnalysis, error)
	GetByID(ctx context.Context, requester Requester, id uuid.UUID) (*models.PropertyAnalysis, error)
	ListMine(ctx context.Context, userID uuid.UUID, f repositories.AnalysisFilters, pg repositories.Pagination) ([]*models.PropertyAnalysis, int, error)
	ListPublic(ctx context.Context, pg repositories.Pagination) ([]*models.PropertyAnalysis, int, error)
	Update(ctx context.Context, requester Requester, id uuid.UUID, req dtos.UpdateAnalysisRequest) (*models.PropertyAnalysis, error)
	Delete(ctx context.Context, requester Requester, id uuid.UUID) error
	SetFavorite(ctx context.Context, requester Requester, id uuid.UUID, favorite bool) error
	Share(ctx context.Context, requester Requester, id uuid.UUID, recipientEmail string) (*models.PropertyAnalysis, error)

	GetMotivation(ctx context.Context, requester Requester, analysisID uuid.UUID) (*dtos.MotivationMetricsResponse, error)
	SaveMotivation(ctx context.Context, requester Requester, analysisID uuid.UUID, req dtos.SaveMotivationRequest) (*models.PurchaseMotivation, error)
	GetRevenue(ctx context.Context, requester Requester, analysisID uuid.UUID) (*models.RevenueProjection, error)
	SaveRevenue(ctx context.Context, requester Requester, analysisID uuid.UUID, req dtos.SaveRevenueRequest) (*models.RevenueProjection, error)
	GetMaintenance(ctx context.Context, requester Requester, analysisID uuid.UUID) (*models.MaintenanceBreakdown, error)
	SaveMaintenance(ctx context.Context, requester Requester, analysisID uuid.UUID, req dtos.SaveMaintenanceRequest) (*models.MaintenanceBreakdown, error)

	Summary(ctx context.Context, requester Requester, analysisID uuid.UUID) (*dtos.SummaryResponse, error)
}

// Requester identifies the authenticated caller for ownership checks.
type Requester struct {
	UserID uuid.UUID
	Role   string
}

func (r Requester) isAdmin() bool { return r.Role == models.RoleAdmin }

type analysisService struct {
	cfg             *config.Config
	analysisRepo    repositories.AnalysisRepository
	motivationRepo  repositories.MotivationRepository
	revenueRepo     repositories.RevenueRepository
	maintenanceRepo repositories.MaintenanceRepository
	activityRepo    repositories.ActivityLogRepository
	userRepo        repositories.UserRepository
	emailSvc        EmailService
}

func NewAnalysisService(
	cfg *config.Config,
	analysisRepo repositories.AnalysisRepository,
	motivationRepo repositories.MotivationRepository,
	revenueRepo repositories.RevenueRepository,
	maintenanceRepo repositories.MaintenanceRepository,
	activityRepo repositories.ActivityLogRepository,
	userRepo repositories.UserRepository,
	emailSvc EmailService,
) AnalysisService {
	return &analysisService{
		cfg:             cfg,
		analysisRepo:    analysisRepo,
		motivationRepo:  motivationRepo,
		revenueRepo:     revenueRepo,
		maintenanceRepo: maintenanceRepo,
		activityRepo:    activityRepo,
		userRepo:        userRepo,
		emailSvc:        emailSvc,
	}
}

func errAnalysisNotFound() error {
	return &utils.AppError{
		StatusCode: http.StatusNotFound,
		Code:       utils.ErrCodeNotFound,
		Message:    "Analysis not found",
	}
}

func errForbidden() error {
	return &utils.AppError{
		StatusCode: http.StatusForbidden,
		Code:       utils.ErrCodeForbidden,
		Message:    "You do not have access to this analysis",
	}
}

func (s *analysisService) Create(ctx context.Context, userID uuid.UUID, req dtos.CreateAnalysisRequest) (*models.PropertyAnalysis, error) {
	a := &models.PropertyAnalysis{
		ID:           uuid.New(),
		UserID:       userID,
		PropertyID:   req.PropertyID,
		PropertyName: req.PropertyName,
		ClientName:   req.ClientName,
		Address:      req.Address,
		Status:       models.AnalysisStatusDraft,
		Tags:         req.Tags,
		Notes:        req.Notes,
	}
	if err := s.analysisRepo.Create(ctx, a); err != nil {
		return nil, err
	}
	s.logActivity(ctx, userID, "analysis.create", a.ID, nil)

	created, err := s.analysisRepo.GetByID(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// loadOwned fetches the analysis and enforces ownership: the owner and
// admins pass, everyone else gets 403. A missing row is a 404.
func (s *analysisService) loadOwned(ctx context.Context, requester Requester, id uuid.UUID) (*models.PropertyAnalysis, error) {
	a, err := s.analysisRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errAnalysisNotFound()
	}
	if a.UserID != requester.UserID && !requester.isAdmin() {
		return nil, errForbidden()
	}
	return a, nil
}

// loadReadable is loadOwned relaxed for reads: public analyses are
// readable by anyone, including anonymous callers.
func (s *analysisService) loadReadable(ctx context.Context, requester Requester, id uuid.UUID) (*models.PropertyAnalysis, error) {
	a, err := s.analysisRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, errAnalysisNotFound()
	}
	if a.IsPublic || a.UserID == requester.UserID || requester.isAdmin() {
		return a, nil
	}
	return nil, errForbidden()
}

func (s *analysisService) GetByID(ctx context.Context, requester Requester, id uuid.UUID) (*models.PropertyAnalysis, error) {
	return s.loadReadable(ctx, requester, id)
}

func (s *analysisService) ListMine(ctx context.Context, userID uuid.UUID, f repositories.AnalysisFilters, pg repositories.Pagination) ([]*models.PropertyAnalysis, int, error) {
	return s.analysisRepo.ListByUserID(ctx, userID, f, pg)
}

func (s *analysisService) ListPublic(ctx context.Context, pg repositories.Pagination) ([]*models.PropertyAnalysis, int, error) {
	return s.analysisRepo.ListPublic(ctx, pg)
}

func (s *analysisService) Update(ctx context.Context, requester Requester, id uuid.UUID, req dtos.UpdateAnalysisRequest) (*models.PropertyAnalysis, error) {
	a, err := s.loadOwned(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	a.PropertyName = req.PropertyName
	a.ClientName = req.ClientName
	a.Address = req.Address
	a.PropertyID = req.PropertyID
	a.Status = req.Status
	a.Tags = req.Tags
	a.Notes = req.Notes

	if err := s.analysisRepo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.logActivity(ctx, requester.UserID, "analysis.update", a.ID, nil)
	return s.analysisRepo.GetByID(ctx, a.ID)
}

func (s *analysisService) Delete(ctx context.Context, requester Requester, id uuid.UUID) error {
	if _, err := s.loadOwned(ctx, requester, id); err != nil {
		return err
	}
	if err := s.analysisRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logActivity(ctx, requester.UserID, "analysis.delete", id, nil)
	return nil
}

func (s *analysisService) SetFavorite(ctx context.Context, requester Requester, id uuid.UUID, favorite bool) error {
	if _, err := s.loadOwned(ctx, requester, id); err != nil {
		return err
	}
	if err := s.analysisRepo.SetFavorite(ctx, id, favorite); err != nil {
		return err
	}
	s.logActivity(ctx, requester.UserID, "analysis.favorite", id, map[string]any{"favorite": favorite})
	return nil
}

// Share marks the analysis public and, when a recipient address is given,
// emails them a link. A failed email does not undo the share.
func (s *analysisService) Share(ctx context.Context, requester Requester, id uuid.UUID, recipientEmail string) (*models.PropertyAnalysis, error) {
	a, err := s.loadOwned(ctx, requester, id)
	if err != nil {
		return nil, err
	}

	if !a.IsPublic {
		if err := s.analysisRepo.SetPublic(ctx, id, true); err != nil {
			return nil, err
		}
		a.IsPublic = true
	}

	if recipientEmail != "" {
		senderName := "A Luxe Property Analysis user"
		if sender, uErr := s.userRepo.GetByID(ctx, requester.UserID); uErr == nil && sender != nil {
			senderName = sender.FirstName + " " + sender.LastName
		}
		shareURL := fmt.Sprintf("%s/analysis/%s", s.cfg.AppURL, a.ID)
		if mailErr := s.emailSvc.SendAnalysisSharedEmail(recipientEmail, senderName, a.PropertyName, shareURL); mailErr != nil {
			utils.Logger.WithError(mailErr).Warn("share notification email failed")
		}
	}

	s.logActivity(ctx, requester.UserID, "analysis.share", id, map[string]any{"recipient": recipientEmail})
	return a, nil
}

/* ------------------------------------------------------------------
   Sections
------------------------------------------------------------------ */

func (s *analysisService) GetMotivation(ctx context.Context, requester Requester, analysisID uuid.UUID) (*dtos.MotivationMetricsResponse, error) {
	if _, err := s.loadReadable(ctx, requester, analysisID); err != nil {
		return nil, err
	}
	m, err := s.motivationRepo.GetByAnalysisID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNotFound,
			Message:    "Purchase motivation not set for this analysis",
		}
	}

	resp := &dtos.MotivationMetricsResponse{Motivation: m}
	if payment, pErr := finance.MonthlyPayment(m.LoanAmount, m.InterestRate, m.LoanTerm); pErr == nil {
		resp.MonthlyPayment = payment
	}
	if ltv, lErr := finance.LoanToValue(m.LoanAmount, m.PurchasePrice); lErr == nil {
		resp.LoanToValue = ltv
	}
	return resp, nil
}

func (s *analysisService) SaveMotivation(ctx context.Context, requester Requester, analysisID uuid.UUID, req dtos.SaveMotivationRequest) (*models.PurchaseMotivation, error) {
	if _, err := s.loadOwned(ctx, requester, analysisID); err != nil {
		return nil, err
	}

	m := &models.PurchaseMotivation{
		ID:                 uuid.New(),
		PropertyAnalysisID: analysisID,
		PurchasePrice:      req.PurchasePrice,
		TotalDeposit:       req.TotalDeposit,
		LoanAmount:         finance.LoanAmount(req.PurchasePrice, req.TotalDeposit),
		InterestRate:       req.InterestRate,
		LoanTerm:           req.LoanTerm,
		InvestmentGoals:    req.InvestmentGoals,
		Location:           req.Location,
	}
	if err := s.motivationRepo.Upsert(ctx, m); err != nil {
		return nil, err
	}
	s.logActivity(ctx, requester.UserID, "analysis.motivation.save", analysisID, nil)
	return s.motivationRepo.GetByAnalysisID(ctx, analysisID)
}

func (s *analysisService) GetRevenue(ctx context.Context, requester Requester, analysisID uuid.UUID) (*models.RevenueProjection, error) {
	if _, err := s.loadReadable(ctx, requester, analysisID); err != nil {
		return nil, err
	}
	p, err := s.revenueRepo.GetByAnalysisID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNotFound,
			Message:    "Revenue projection not set for this analysis",
		}
	}
	return p, nil
}

func (s *analysisService) SaveRevenue(ctx context.Context, requester Requester, analysisID uuid.UUID, req dtos.SaveRevenueRequest) (*models.RevenueProjection, error) {
	if _, err := s.loadOwned(ctx, requester, analysisID); err != nil {
		return nil, err
	}

	p := &models.RevenueProjection{
		ID:                 uuid.New(),
		PropertyAnalysisID: analysisID,
		BaseADR:            req.BaseADR,
		MonthlyOccupancy:   req.MonthlyOccupancy,
		MonthlyMultipliers: req.MonthlyMultipliers,
	}
	if err := s.revenueRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	s.logActivity(ctx, requester.UserID, "analysis.revenue.save", analysisID, nil)
	return s.revenueRepo.GetByAnalysisID(ctx, analysisID)
}

func (s *analysisService) GetMaintenance(ctx context.Context, requester Requester, analysisID uuid.UUID) (*models.MaintenanceBreakdown, error) {
	if _, err := s.loadReadable(ctx, requester, analysisID); err != nil {
		return nil, err
	}
	b, err := s.maintenanceRepo.GetByAnalysisID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNotFound,
			Message:    "Maintenance breakdown not set for this analysis",
		}
	}
	return b, nil
}

func (s *analysisService) SaveMaintenance(ctx context.Context, requester Requester, analysisID uuid.UUID, req dtos.SaveMaintenanceRequest) (*models.MaintenanceBreakdown, error) {
	if _, err := s.loadOwned(ctx, requester, analysisID); err != nil {
		return nil, err
	}

	b := &models.MaintenanceBreakdown{
		ID:                       uuid.New(),
		PropertyAnalysisID:       analysisID,
		TotalArea:                req.TotalArea,
		Bedrooms:                 req.Bedrooms,
		HasPool:                  req.HasPool,
		PropertyClass:            req.PropertyClass,
		GeneralRepairRate:        req.GeneralRepairRate,
		HVACMaintenanceRate:      req.HVACMaintenanceRate,
		LuxuryMultiplier:         req.LuxuryMultiplier,
		CleaningCostPerBedroom:   req.CleaningCostPerBedroom,
		LinenServicePerBedroom:   req.LinenServicePerBedroom,
		PoolChemicalsCost:        req.PoolChemicalsCost,
		PoolEquipmentMaintenance: req.PoolEquipmentMaintenance,
		GardenWaterCost:          req.GardenWaterCost,
		LandscapingCost:          req.LandscapingCost,
		OperationalCostsPerStay:  req.OperationalCostsPerStay,
		AverageStaysPerYear:      req.AverageStaysPerYear,
	}
	if err := s.maintenanceRepo.Upsert(ctx, b); err != nil {
		return nil, err
	}
	s.logActivity(ctx, requester.UserID, "analysis.maintenance.save", analysisID, nil)
	return s.maintenanceRepo.GetByAnalysisID(ctx, analysisID)
}

/* ------------------------------------------------------------------
   Summary
------------------------------------------------------------------ */

// Summary combines the stored sections into the computed dashboard
// metrics. The motivation section is required; revenue and maintenance
// fall back to placeholder figures when not saved yet.
func (s *analysisService) Summary(ctx context.Context, requester Requester, analysisID uuid.UUID) (*dtos.SummaryResponse, error) {
	if _, err := s.loadReadable(ctx, requester, analysisID); err != nil {
		return nil, err
	}

	m, err := s.motivationRepo.GetByAnalysisID(ctx, analysisID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, &utils.AppError{
			StatusCode: http.StatusNotFound,
			Code:       utils.ErrCodeNotFound,
			Message:    "Summary requires a saved purchase motivation",
		}
	}

	monthlyPayment, err := finance.MonthlyPayment(m.LoanAmount, m.InterestRate, m.LoanTerm)
	if err != nil {
		var calcErr *finance.CalculationError
		if errors.As(err, &calcErr) {
			return nil, &utils.AppError{
				StatusCode: http.StatusUnprocessableEntity,
				Code:       utils.ErrCodeCalculation,
				Message:    calcErr.Reason,
			}
		}
		return nil, err
	}

	annualRevenue := fallbackAnnualRevenue
	if p, rErr := s.revenueRepo.GetByAnalysisID(ctx, analysisID); rErr != nil {
		return nil, rErr
	} else if p != nil {
		occ := finance.MonthTable(p.MonthlyOccupancy, finance.DefaultOccupancy)
		mult := finance.MonthTable(p.MonthlyMultipliers, finance.DefaultMultiplier)
		annualRevenue = finance.AnnualRevenue(p.BaseADR, occ, mult)
	}

	annualMaintenance := fallbackAnnualMaintenance
	if b, mErr := s.maintenanceRepo.GetByAnalysisID(ctx, analysisID); mErr != nil {
		return nil, mErr
	} else if b != nil {
		annualMaintenance = finance.AnnualMaintenance(finance.MaintenanceInputs{
			TotalArea:                b.TotalArea,
			Bedrooms:                 b.Bedrooms,
			HasPool:                  b.HasPool,
			PoolChemicalsCost:        b.PoolChemicalsCost,
			PoolEquipmentMaintenance: b.PoolEquipmentMaintenance,
			GardenWaterCost:          b.GardenWaterCost,
			LandscapingCost:          b.LandscapingCost,
			GeneralRepairRate:        b.GeneralRepairRate,
			HVACMaintenanceRate:      b.HVACMaintenanceRate,
			CleaningCostPerBedroom:   b.CleaningCostPerBedroom,
			LinenServicePerBedroom:   b.LinenServicePerBedroom,
			OperationalCostsPerStay:  b.OperationalCostsPerStay,
			AverageStaysPerYear:      b.AverageStaysPerYear,
			LuxuryMultiplier:         b.LuxuryMultiplier,
		})
	}

	netCashFlow := finance.NetCashFlow(annualRevenue, annualMaintenance, monthlyPayment)

	resp := &dtos.SummaryResponse{
		AnalysisID:        analysisID,
		LoanAmount:        m.LoanAmount,
		MonthlyPayment:    monthlyPayment,
		AnnualRevenue:     annualRevenue,
		AnnualMaintenance: annualMaintenance,
		NetCashFlow:       netCashFlow,
		InvestmentHorizon: finance.InvestmentHorizon(netCashFlow, m.LoanTerm),
	}

	if ltv, lErr := finance.LoanToValue(m.LoanAmount, m.PurchasePrice); lErr == nil {
		resp.LoanToValue = ltv
	}

	coc, cocErr := finance.CashOnCashReturn(netCashFlow, m.TotalDeposit)
	if cocErr != nil {
		var calcErr *finance.CalculationError
		if errors.As(cocErr, &calcErr) {
			resp.CalculationError = calcErr.Reason
		} else {
			return nil, cocErr
		}
	} else {
		resp.CashOnCashReturn = utils.Ptr(coc)
		resp.ExpectedReturn = finance.ExpectedReturn(coc)
	}

	return resp, nil
}

// logActivity writes a best-effort audit row; failures only warn.
func (s *analysisService) logActivity(ctx context.Context, userID uuid.UUID, action string, resourceID uuid.UUID, metadata map[string]any) {
	entry := &models.ActivityLog{
		ID:           uuid.New(),
		UserID:       userID,
		Action:       action,
		ResourceType: "property_analysis",
		ResourceID:   resourceID,
		Metadata:     metadata,
	}
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		utils.Logger.WithError(err).Warn("activity log insert failed")
	}
}
