package usecase

import (
	"context"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"blood-bank-api/config"
	"blood-bank-api/internal/delivery/dto"
	"blood-bank-api/internal/delivery/http/middleware"
	"blood-bank-api/internal/domain/entity"
	"blood-bank-api/internal/infrastructure/database"
	"blood-bank-api/internal/repository"
	"blood-bank-api/internal/service"
	"blood-bank-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const testInitialStock = 2000

type recordingPublisher struct {
	mu     sync.Mutex
	events []service.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event service.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPublisher) Close() error {
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, event := range p.events {
		out = append(out, event.Type)
	}
	return out
}

type testEnv struct {
	db         *gorm.DB
	log        *logrus.Logger
	jwtService *jwt.JWTService
	revoker    service.TokenRevoker
	publisher  *recordingPublisher

	auth      AuthUsecase
	donor     DonorUsecase
	hospital  HospitalUsecase
	requests  BloodRequestUsecase
	admin     AdminUsecase
	inventory InventoryUsecase
	auditLogs AuditLogUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	db, err := database.NewSQLiteConnection(filepath.Join(t.TempDir(), "blood-bank-test.db"), log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	userRepo := repository.NewUserRepository()
	donorRepo := repository.NewDonorRepository()
	hospitalRepo := repository.NewHospitalRepository()
	inventoryRepo := repository.NewBloodInventoryRepository()
	requestRepo := repository.NewBloodRequestRepository()
	donationRepo := repository.NewDonationRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	seedCfg := config.SeedConfig{
		AdminEmail:    "admin@bloodbank.com",
		AdminPassword: "admin123",
		AdminName:     "Admin User",
		InitialStock:  testInitialStock,
	}
	if err := database.Seed(db, log, seedCfg, userRepo, inventoryRepo); err != nil {
		t.Fatalf("seed: %v", err)
	}

	jwtService := jwt.NewJWTService(config.JWTConfig{Secret: "usecase-test-secret", Expiry: 7 * 24 * time.Hour})
	revoker := service.NewMemoryTokenRevoker()
	publisher := &recordingPublisher{}
	auditService := service.NewAuditService(log, auditLogRepo)

	return &testEnv{
		db:         db,
		log:        log,
		jwtService: jwtService,
		revoker:    revoker,
		publisher:  publisher,

		auth:      NewAuthUsecase(db, log, userRepo, jwtService, revoker, auditService),
		donor:     NewDonorUsecase(db, log, donorRepo, donationRepo, inventoryRepo, auditService, publisher),
		hospital:  NewHospitalUsecase(db, log, hospitalRepo, requestRepo, auditService, publisher),
		requests:  NewBloodRequestUsecase(db, log, requestRepo, inventoryRepo, auditService, publisher),
		admin:     NewAdminUsecase(db, log, donorRepo, hospitalRepo, donationRepo, requestRepo, inventoryRepo),
		inventory: NewInventoryUsecase(db, log, inventoryRepo),
		auditLogs: NewAuditLogUsecase(db, log, auditLogRepo),
	}
}

func asUser(userID uuid.UUID, role entity.Role) context.Context {
	return middleware.SetAuthContext(context.Background(), &jwt.Claims{
		UserID:  userID,
		Role:    role,
		TokenID: uuid.New().String(),
	})
}

func (e *testEnv) register(t *testing.T, email string, role entity.Role) uuid.UUID {
	t.Helper()

	user, err := e.auth.Register(context.Background(), &dto.RegisterRequest{
		Name:     "Test " + string(role),
		Email:    email,
		Password: "secret123",
		Role:     string(role),
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user.ID
}

func (e *testEnv) adminContext(t *testing.T) context.Context {
	t.Helper()

	var admin entity.User
	if err := e.db.Where("email = ?", "admin@bloodbank.com").First(&admin).Error; err != nil {
		t.Fatalf("load seeded admin: %v", err)
	}
	return asUser(admin.ID, entity.RoleAdmin)
}

// newDonor registers a donor with a completed profile and returns its context
func (e *testEnv) newDonor(t *testing.T, email string, bloodType entity.BloodType) context.Context {
	t.Helper()

	ctx := asUser(e.register(t, email, entity.RoleDonor), entity.RoleDonor)
	_, err := e.donor.UpsertProfile(ctx, &dto.UpsertDonorProfileRequest{
		BloodType: string(bloodType),
		Age:       30,
		Weight:    70,
	})
	if err != nil {
		t.Fatalf("upsert donor profile: %v", err)
	}
	return ctx
}

// newHospital registers a hospital with a completed profile and returns its context
func (e *testEnv) newHospital(t *testing.T, email string) context.Context {
	t.Helper()

	ctx := asUser(e.register(t, email, entity.RoleHospital), entity.RoleHospital)
	_, err := e.hospital.UpsertProfile(ctx, &dto.UpsertHospitalProfileRequest{
		Name:    "City Hospital",
		Address: "1 Main Street",
		Phone:   "555-0100",
	})
	if err != nil {
		t.Fatalf("upsert hospital profile: %v", err)
	}
	return ctx
}

func (e *testEnv) stock(t *testing.T, bloodType entity.BloodType) int {
	t.Helper()

	var row entity.BloodInventory
	if err := e.db.Where("blood_type = ?", bloodType).First(&row).Error; err != nil {
		t.Fatalf("load inventory %s: %v", bloodType, err)
	}
	return row.Quantity
}

func (e *testEnv) requestStatus(t *testing.T, id uuid.UUID) entity.RequestStatus {
	t.Helper()

	var request entity.BloodRequest
	if err := e.db.Where("id = ?", id).First(&request).Error; err != nil {
		t.Fatalf("load request %s: %v", id, err)
	}
	return request.Status
}
