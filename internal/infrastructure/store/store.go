// Package store abre el backend de persistencia elegido por DB_DRIVER y expone sus repositorios.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/bikehouse-api/internal/application/booking"
	"github.com/jhoicas/bikehouse-api/internal/application/usecase"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
	"github.com/jhoicas/bikehouse-api/internal/infrastructure/memory"
	mongostore "github.com/jhoicas/bikehouse-api/internal/infrastructure/mongo"
	"github.com/jhoicas/bikehouse-api/internal/infrastructure/postgres"
	"github.com/jhoicas/bikehouse-api/pkg/config"
)

// TxRunner transacciones de pago y de verificación de vendedor sobre el mismo backend.
type TxRunner interface {
	booking.PaymentTxRunner
	usecase.VerificationTxRunner
}

// Repositories repos de un backend más su runner transaccional.
type Repositories struct {
	Users      repository.UserRepository
	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Bookings   repository.BookingRepository
	Payments   repository.PaymentRepository
	Reports    repository.ReportRepository
	Tx         TxRunner

	close func()
}

// Close libera conexiones del backend. Seguro de llamar más de una vez.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
		r.close = nil
	}
}

// Open conecta según cfg.DB.Driver, prepara esquema o índices y devuelve los repos.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		return openPostgres(ctx, cfg.DB)
	case config.DriverMongo:
		return openMongo(ctx, cfg.Mongo)
	case config.DriverMemory:
		return OpenMemory(), nil
	default:
		return nil, fmt.Errorf("store: driver desconocido %q", cfg.DB.Driver)
	}
}

func openPostgres(ctx context.Context, cfg config.DBConfig) (*Repositories, error) {
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &Repositories{
		Users:      postgres.NewUserRepository(pool),
		Products:   postgres.NewProductRepository(pool),
		Categories: postgres.NewCategoryRepository(pool),
		Bookings:   postgres.NewBookingRepository(pool),
		Payments:   postgres.NewPaymentRepository(pool),
		Reports:    postgres.NewReportRepository(pool),
		Tx:         postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}

func openMongo(ctx context.Context, cfg config.MongoConfig) (*Repositories, error) {
	client, err := mongostore.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Database)
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return &Repositories{
		Users:      mongostore.NewUserRepository(db),
		Products:   mongostore.NewProductRepository(db),
		Categories: mongostore.NewCategoryRepository(db),
		Bookings:   mongostore.NewBookingRepository(db),
		Payments:   mongostore.NewPaymentRepository(db),
		Reports:    mongostore.NewReportRepository(db),
		Tx:         mongostore.NewTxRunner(db),
		close:      func() { _ = client.Disconnect(context.Background()) },
	}, nil
}

// OpenMemory repos en memoria de proceso (desarrollo y tests). No persiste entre reinicios.
func OpenMemory() *Repositories {
	s := memory.NewStore()
	return &Repositories{
		Users:      memory.NewUserRepository(s),
		Products:   memory.NewProductRepository(s),
		Categories: memory.NewCategoryRepository(s),
		Bookings:   memory.NewBookingRepository(s),
		Payments:   memory.NewPaymentRepository(s),
		Reports:    memory.NewReportRepository(s),
		Tx:         memory.NewTxRunner(s),
	}
}
