package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/jhoicas/bikehouse-api/internal/domain"
	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
	"github.com/jhoicas/bikehouse-api/internal/domain/repository"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.BookingRepository  = (*BookingRepo)(nil)
	_ repository.PaymentRepository  = (*PaymentRepo)(nil)
	_ repository.ReportRepository   = (*ReportRepo)(nil)
)

// findAll decodifica todos los documentos del cursor y los convierte con conv.
func findAll[D any, E any](ctx context.Context, coll *mongo.Collection, filter any, conv func(D) *E) ([]*E, error) {
	cur, err := coll.Find(ctx, filter, newestFirst())
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var docs []D
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*E, 0, len(docs))
	for _, d := range docs {
		out = append(out, conv(d))
	}
	return out, nil
}

// UserRepo usuarios en la colección users.
type UserRepo struct {
	coll *mongo.Collection
}

// NewUserRepository construye el repo.
func NewUserRepository(db *mongo.Database) *UserRepo {
	return &UserRepo{coll: db.Collection(colUsers)}
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if _, err := r.coll.InsertOne(ctx, newUserDoc(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var d userDoc
	err := r.coll.FindOne(ctx, bson.M{"emailKey": emailKey(email)}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return d.entity(), nil
}

func (r *UserRepo) ListByRole(ctx context.Context, role string) ([]*entity.User, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = role
	}
	list, err := findAll(ctx, r.coll, filter, userDoc.entity)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return list, nil
}

func (r *UserRepo) SetVerified(ctx context.Context, email string) (int64, int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"emailKey": emailKey(email)},
		bson.M{"$set": bson.M{"isVerified": true}, "$currentDate": bson.M{"updatedAt": true}},
	)
	if err != nil {
		return 0, 0, fmt.Errorf("verify user: %w", err)
	}
	return res.MatchedCount, res.ModifiedCount, nil
}

func (r *UserRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount, nil
}

// ProductRepo productos en la colección products.
type ProductRepo struct {
	coll *mongo.Collection
}

// NewProductRepository construye el repo.
func NewProductRepository(db *mongo.Database) *ProductRepo {
	return &ProductRepo{coll: db.Collection(colProducts)}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	doc, err := newProductDoc(p)
	if err != nil {
		return fmt.Errorf("convertir producto: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var d productDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return d.entity(), nil
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.OwnerEmail != "" {
		filter["ownerKey"] = emailKey(f.OwnerEmail)
	}
	if f.VerifiedOnly {
		filter["isVerified"] = true
	}
	list, err := findAll(ctx, r.coll, filter, productDoc.entity)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return list, nil
}

func (r *ProductRepo) VerifyByOwner(ctx context.Context, ownerEmail string) (int64, error) {
	res, err := r.coll.UpdateMany(ctx,
		bson.M{"ownerKey": emailKey(ownerEmail), "isVerified": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{"isVerified": true}, "$currentDate": bson.M{"updatedAt": true}},
	)
	if err != nil {
		return 0, fmt.Errorf("verify products: %w", err)
	}
	return res.ModifiedCount, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete product: %w", err)
	}
	return res.DeletedCount, nil
}

// CategoryRepo categorías en la colección categories.
type CategoryRepo struct {
	coll *mongo.Collection
}

// NewCategoryRepository construye el repo.
func NewCategoryRepository(db *mongo.Database) *CategoryRepo {
	return &CategoryRepo{coll: db.Collection(colCategories)}
}

func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer cur.Close(ctx)
	var docs []categoryDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	out := make([]*entity.Category, 0, len(docs))
	for _, d := range docs {
		out = append(out, &entity.Category{ID: d.ID, Name: d.Name})
	}
	return out, nil
}

// Upsert crea la categoría por nombre; si ya existe conserva su _id.
func (r *CategoryRepo) Upsert(ctx context.Context, c *entity.Category) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.M{"name": c.Name},
		bson.M{"$setOnInsert": bson.M{"_id": c.ID}},
		options.UpdateOne().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert category: %w", err)
	}
	return nil
}

// BookingRepo reservas en la colección bookings.
type BookingRepo struct {
	coll *mongo.Collection
}

// NewBookingRepository construye el repo.
func NewBookingRepository(db *mongo.Database) *BookingRepo {
	return &BookingRepo{coll: db.Collection(colBookings)}
}

func (r *BookingRepo) Create(ctx context.Context, b *entity.Booking) error {
	doc, err := newBookingDoc(b)
	if err != nil {
		return fmt.Errorf("convertir reserva: %w", err)
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id string) (*entity.Booking, error) {
	var d bookingDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return d.entity(), nil
}

func (r *BookingRepo) ListByBuyer(ctx context.Context, buyerEmail string) ([]*entity.Booking, error) {
	list, err := findAll(ctx, r.coll, bson.M{"buyerKey": emailKey(buyerEmail)}, bookingDoc.entity)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return list, nil
}

// MarkPaid actualización condicional sobre paid=false.
func (r *BookingRepo) MarkPaid(ctx context.Context, b *entity.Booking) error {
	if !b.Paid || b.TransactionID == nil {
		return domain.ErrInvalidInput
	}
	res, err := r.coll.UpdateOne(ctx,
		bson.M{"_id": b.ID, "paid": false},
		bson.M{"$set": bson.M{"paid": true, "transactionId": *b.TransactionID, "updatedAt": b.UpdatedAt}},
	)
	if err != nil {
		return fmt.Errorf("mark booking paid: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAlreadyPaid
	}
	return nil
}

// PaymentRepo pagos en la colección payments.
type PaymentRepo struct {
	coll *mongo.Collection
}

// NewPaymentRepository construye el repo.
func NewPaymentRepository(db *mongo.Database) *PaymentRepo {
	return &PaymentRepo{coll: db.Collection(colPayments)}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	amount, err := toDecimal128(p.Amount)
	if err != nil {
		return fmt.Errorf("convertir monto: %w", err)
	}
	_, err = r.coll.InsertOne(ctx, paymentDoc{
		ID: p.ID, BookingID: p.BookingID, TransactionID: p.TransactionID,
		Amount: amount, Email: p.Email, CreatedAt: p.CreatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

func (r *PaymentRepo) GetByBookingID(ctx context.Context, bookingID string) (*entity.Payment, error) {
	var d paymentDoc
	if err := r.coll.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &entity.Payment{
		ID: d.ID, BookingID: d.BookingID, TransactionID: d.TransactionID,
		Amount: fromDecimal128(d.Amount), Email: d.Email, CreatedAt: d.CreatedAt,
	}, nil
}

// ReportRepo denuncias en la colección reports.
type ReportRepo struct {
	coll *mongo.Collection
}

// NewReportRepository construye el repo.
func NewReportRepository(db *mongo.Database) *ReportRepo {
	return &ReportRepo{coll: db.Collection(colReports)}
}

func (r *ReportRepo) Create(ctx context.Context, rep *entity.Report) error {
	_, err := r.coll.InsertOne(ctx, reportDoc{
		ID: rep.ID, ProductID: rep.ProductRef, ProductName: rep.ProductName,
		Email: rep.ReporterEmail, Reason: rep.Reason, CreatedAt: rep.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

func (r *ReportRepo) List(ctx context.Context) ([]*entity.Report, error) {
	list, err := findAll(ctx, r.coll, bson.M{}, func(d reportDoc) *entity.Report {
		return &entity.Report{
			ID: d.ID, ProductRef: d.ProductID, ProductName: d.ProductName,
			ReporterEmail: d.Email, Reason: d.Reason, CreatedAt: d.CreatedAt,
		}
	})
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return list, nil
}

func (r *ReportRepo) Delete(ctx context.Context, id string) (int64, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, fmt.Errorf("delete report: %w", err)
	}
	return res.DeletedCount, nil
}
