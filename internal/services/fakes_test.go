package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cribInquiries/LuxePropertyAnalysis/internal/models"
	"github.com/cribInquiries/LuxePropertyAnalysis/internal/repositories"
)

// In-memory fakes used across the service tests.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*models.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) UpdateProfile(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.users[u.ID]
	if !ok {
		return nil
	}
	existing.FirstName = u.FirstName
	existing.LastName = u.LastName
	existing.Phone = u.Phone
	existing.Bio = u.Bio
	existing.AvatarURL = u.AvatarURL
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (f *fakeUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		u.IsActive = false
	}
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*models.RefreshToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: map[uuid.UUID]*models.RefreshToken{}}
}

func (f *fakeTokenRepo) Create(_ context.Context, t *models.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.tokens[t.ID] = &cp
	return nil
}

func (f *fakeTokenRepo) GetByHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.TokenHash == tokenHash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeTokenRepo) Revoke(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.tokens[id]; ok {
		t.Revoked = true
	}
	return nil
}

func (f *fakeTokenRepo) RevokeAllForUser(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (f *fakeTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, t := range f.tokens {
		if t.Revoked || time.Now().After(t.ExpiresAt) {
			delete(f.tokens, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeTokenRepo) activeCountForUser(userID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, t := range f.tokens {
		if t.UserID == userID && !t.Revoked {
			n++
		}
	}
	return n
}

type fakeResetTokenRepo struct {
	mu     sync.Mutex
	tokens map[uuid.UUID]*repositories.PasswordResetToken
}

func newFakeResetTokenRepo() *fakeResetTokenRepo {
	return &fakeResetTokenRepo{tokens: map[uuid.UUID]*repositories.PasswordResetToken{}}
}

func (f *fakeResetTokenRepo) Create(_ context.Context, t *repositories.PasswordResetToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.tokens[t.ID] = &cp
	return nil
}

func (f *fakeResetTokenRepo) GetByHash(_ context.Context, tokenHash string) (*repositories.PasswordResetToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.tokens {
		if t.TokenHash == tokenHash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeResetTokenRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, id)
	return nil
}

func (f *fakeResetTokenRepo) DeleteAllForUser(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, t := range f.tokens {
		if t.UserID == userID {
			delete(f.tokens, id)
		}
	}
	return nil
}

func (f *fakeResetTokenRepo) DeleteExpired(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for id, t := range f.tokens {
		if time.Now().After(t.ExpiresAt) {
			delete(f.tokens, id)
			n++
		}
	}
	return n, nil
}

type fakeAnalysisRepo struct {
	mu       sync.Mutex
	analyses map[uuid.UUID]*models.PropertyAnalysis
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{analyses: map[uuid.UUID]*models.PropertyAnalysis{}}
}

func (f *fakeAnalysisRepo) Create(_ context.Context, a *models.PropertyAnalysis) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *a
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	f.analyses[a.ID] = &cp
	return nil
}

func (f *fakeAnalysisRepo) GetByID(_ context.Context, id uuid.UUID) (*models.PropertyAnalysis, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.analyses[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAnalysisRepo) ListByUserID(_ context.Context, userID uuid.UUID, fl repositories.AnalysisFilters, _ repositories.Pagination) ([]*models.PropertyAnalysis, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.PropertyAnalysis
	for _, a := range f.analyses {
		if a.UserID != userID {
			continue
		}
		if fl.Status != "" && a.Status != fl.Status {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeAnalysisRepo) ListPublic(_ context.Context, _ repositories.Pagination) ([]*models.PropertyAnalysis, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.PropertyAnalysis
	for _, a := range f.analyses {
		if a.IsPublic {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (f *fakeAnalysisRepo) Update(_ context.Context, a *models.PropertyAnalysis) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *a
	cp.UpdatedAt = time.Now()
	f.analyses[a.ID] = &cp
	return nil
}

func (f *fakeAnalysisRepo) SetFavorite(_ context.Context, id uuid.UUID, favorite bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.analyses[id]; ok {
		a.IsFavorite = favorite
	}
	return nil
}

func (f *fakeAnalysisRepo) SetPublic(_ context.Context, id uuid.UUID, public bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.analyses[id]; ok {
		a.IsPublic = public
	}
	return nil
}

func (f *fakeAnalysisRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.analyses, id)
	return nil
}

type fakeMotivationRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.PurchaseMotivation
}

func newFakeMotivationRepo() *fakeMotivationRepo {
	return &fakeMotivationRepo{rows: map[uuid.UUID]*models.PurchaseMotivation{}}
}

func (f *fakeMotivationRepo) GetByAnalysisID(_ context.Context, analysisID uuid.UUID) (*models.PurchaseMotivation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.rows[analysisID]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMotivationRepo) Upsert(_ context.Context, m *models.PurchaseMotivation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *m
	f.rows[m.PropertyAnalysisID] = &cp
	return nil
}

type fakeRevenueRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.RevenueProjection
}

func newFakeRevenueRepo() *fakeRevenueRepo {
	return &fakeRevenueRepo{rows: map[uuid.UUID]*models.RevenueProjection{}}
}

func (f *fakeRevenueRepo) GetByAnalysisID(_ context.Context, analysisID uuid.UUID) (*models.RevenueProjection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[analysisID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRevenueRepo) Upsert(_ context.Context, p *models.RevenueProjection) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.rows[p.PropertyAnalysisID] = &cp
	return nil
}

type fakeMaintenanceRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*models.MaintenanceBreakdown
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{rows: map[uuid.UUID]*models.MaintenanceBreakdown{}}
}

func (f *fakeMaintenanceRepo) GetByAnalysisID(_ context.Context, analysisID uuid.UUID) (*models.MaintenanceBreakdown, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.rows[analysisID]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeMaintenanceRepo) Upsert(_ context.Context, b *models.MaintenanceBreakdown) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *b
	f.rows[b.PropertyAnalysisID] = &cp
	return nil
}

type fakeActivityRepo struct {
	mu      sync.Mutex
	entries []*models.ActivityLog
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{}
}

func (f *fakeActivityRepo) Insert(_ context.Context, entry *models.ActivityLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *entry
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeActivityRepo) ListByUserID(_ context.Context, userID uuid.UUID, _ repositories.Pagination) ([]*models.ActivityLog, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.ActivityLog
	for _, e := range f.entries {
		if e.UserID == userID {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, len(out), nil
}

func (f *fakeActivityRepo) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeEmailService struct {
	mu         sync.Mutex
	welcome    []string
	resets     map[string]string // toEmail -> raw token
	shareLinks []string
	failAll    bool
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{resets: map[string]string{}}
}

func (f *fakeEmailService) SendWelcomeEmail(toEmail, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errSendFailed
	}
	f.welcome = append(f.welcome, toEmail)
	return nil
}

func (f *fakeEmailService) SendPasswordResetEmail(toEmail, resetToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errSendFailed
	}
	f.resets[toEmail] = resetToken
	return nil
}

func (f *fakeEmailService) SendAnalysisSharedEmail(_, _, _, shareURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll {
		return errSendFailed
	}
	f.shareLinks = append(f.shareLinks, shareURL)
	return nil
}

var errSendFailed = &sendFailure{}

type sendFailure struct{}

func (*sendFailure) Error() string { return "send failed" }
