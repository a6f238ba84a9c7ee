package mongo

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/jhoicas/bikehouse-api/internal/domain/entity"
)

// Documentos BSON. Los campos *Key guardan el email en minúsculas para búsquedas e índices.

type userDoc struct {
	ID         string    `bson:"_id"`
	Email      string    `bson:"email"`
	EmailKey   string    `bson:"emailKey"`
	Name       string    `bson:"name"`
	Role       string    `bson:"role"`
	IsVerified bool      `bson:"isVerified"`
	CreatedAt  time.Time `bson:"createdAt"`
	UpdatedAt  time.Time `bson:"updatedAt"`
}

type productDoc struct {
	ID            string          `bson:"_id"`
	Email         string          `bson:"email"`
	OwnerKey      string          `bson:"ownerKey"`
	SellerName    string          `bson:"sellerName"`
	Category      string          `bson:"category"`
	Name          string          `bson:"name"`
	Description   string          `bson:"description,omitempty"`
	Condition     string          `bson:"condition,omitempty"`
	Location      string          `bson:"location,omitempty"`
	Phone         string          `bson:"phone,omitempty"`
	Image         string          `bson:"image,omitempty"`
	OriginalPrice bson.Decimal128 `bson:"originalPrice"`
	ResalePrice   bson.Decimal128 `bson:"resalePrice"`
	YearsOfUse    int             `bson:"yearsOfUse"`
	IsVerified    bool            `bson:"isVerified"`
	CreatedAt     time.Time       `bson:"createdAt"`
	UpdatedAt     time.Time       `bson:"updatedAt"`
}

type categoryDoc struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

type bookingDoc struct {
	ID            string          `bson:"_id"`
	Email         string          `bson:"email"`
	BuyerKey      string          `bson:"buyerKey"`
	BuyerName     string          `bson:"buyerName"`
	ProductID     string          `bson:"productId"`
	ProductName   string          `bson:"productName"`
	Price         bson.Decimal128 `bson:"price"`
	Phone         string          `bson:"phone,omitempty"`
	MeetLocation  string          `bson:"meetLocation,omitempty"`
	Paid          bool            `bson:"paid"`
	TransactionID *string         `bson:"transactionId"`
	CreatedAt     time.Time       `bson:"createdAt"`
	UpdatedAt     time.Time       `bson:"updatedAt"`
}

type paymentDoc struct {
	ID            string          `bson:"_id"`
	BookingID     string          `bson:"bookingId"`
	TransactionID string          `bson:"transactionId"`
	Amount        bson.Decimal128 `bson:"amount"`
	Email         string          `bson:"email"`
	CreatedAt     time.Time       `bson:"createdAt"`
}

type reportDoc struct {
	ID          string    `bson:"_id"`
	ProductID   string    `bson:"productId"`
	ProductName string    `bson:"productName"`
	Email       string    `bson:"email"`
	Reason      string    `bson:"reason,omitempty"`
	CreatedAt   time.Time `bson:"createdAt"`
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toDecimal128(d decimal.Decimal) (bson.Decimal128, error) {
	return bson.ParseDecimal128(d.String())
}

func fromDecimal128(d bson.Decimal128) decimal.Decimal {
	v, err := decimal.NewFromString(d.String())
	if err != nil {
		return decimal.Zero
	}
	return v
}

func newUserDoc(u *entity.User) userDoc {
	return userDoc{
		ID: u.ID, Email: u.Email, EmailKey: emailKey(u.Email), Name: u.Name, Role: u.Role,
		IsVerified: u.IsVerified, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func (d userDoc) entity() *entity.User {
	return &entity.User{
		ID: d.ID, Email: d.Email, Name: d.Name, Role: d.Role,
		IsVerified: d.IsVerified, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func newProductDoc(p *entity.Product) (productDoc, error) {
	original, err := toDecimal128(p.OriginalPrice)
	if err != nil {
		return productDoc{}, err
	}
	resale, err := toDecimal128(p.ResalePrice)
	if err != nil {
		return productDoc{}, err
	}
	return productDoc{
		ID: p.ID, Email: p.OwnerEmail, OwnerKey: emailKey(p.OwnerEmail), SellerName: p.OwnerName,
		Category: p.Category, Name: p.Name, Description: p.Description, Condition: p.Condition,
		Location: p.Location, Phone: p.Phone, Image: p.ImageURL,
		OriginalPrice: original, ResalePrice: resale, YearsOfUse: p.YearsOfUse,
		IsVerified: p.IsVerified, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}, nil
}

func (d productDoc) entity() *entity.Product {
	return &entity.Product{
		ID: d.ID, OwnerEmail: d.Email, OwnerName: d.SellerName, Category: d.Category, Name: d.Name,
		Description: d.Description, Condition: d.Condition, Location: d.Location, Phone: d.Phone,
		ImageURL: d.Image, OriginalPrice: fromDecimal128(d.OriginalPrice), ResalePrice: fromDecimal128(d.ResalePrice),
		YearsOfUse: d.YearsOfUse, IsVerified: d.IsVerified, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func newBookingDoc(b *entity.Booking) (bookingDoc, error) {
	price, err := toDecimal128(b.Price)
	if err != nil {
		return bookingDoc{}, err
	}
	return bookingDoc{
		ID: b.ID, Email: b.BuyerEmail, BuyerKey: emailKey(b.BuyerEmail), BuyerName: b.BuyerName,
		ProductID: b.ProductRef, ProductName: b.ProductName, Price: price, Phone: b.Phone,
		MeetLocation: b.MeetLocation, Paid: b.Paid, TransactionID: b.TransactionID,
		CreatedAt: b.CreatedAt, UpdatedAt: b.UpdatedAt,
	}, nil
}

func (d bookingDoc) entity() *entity.Booking {
	return &entity.Booking{
		ID: d.ID, BuyerEmail: d.Email, BuyerName: d.BuyerName, ProductRef: d.ProductID,
		ProductName: d.ProductName, Price: fromDecimal128(d.Price), Phone: d.Phone,
		MeetLocation: d.MeetLocation, Paid: d.Paid, TransactionID: d.TransactionID,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}
