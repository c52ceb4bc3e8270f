package mysql

import (
	"time"

	"gorm.io/gorm"

	catalog "github.com/wyfcoding/ecomsynth/internal/catalog/domain"
	transaction "github.com/wyfcoding/ecomsynth/internal/transaction/domain"
	"github.com/wyfcoding/ecomsynth/pkg/utils"
)

// UserModel 用户数据库模型
type UserModel struct {
	gorm.Model
	UserID           string    `gorm:"column:user_id;type:varchar(36);uniqueIndex;not null"`
	City             string    `gorm:"column:city;type:varchar(100)"`
	State            string    `gorm:"column:state;type:varchar(10)"`
	Country          string    `gorm:"column:country;type:varchar(10)"`
	RegistrationDate time.Time `gorm:"column:registration_date;type:datetime"`
	LastActive       time.Time `gorm:"column:last_active;type:datetime"`
}

func (UserModel) TableName() string { return "users" }

// ProductModel 商品数据库模型，价格历史以 JSON 字符串保存
type ProductModel struct {
	gorm.Model
	ProductID    string    `gorm:"column:product_id;type:varchar(36);uniqueIndex;not null"`
	Name         string    `gorm:"column:name;type:varchar(255);not null"`
	CategoryID   string    `gorm:"column:category_id;type:varchar(36);index"`
	BasePrice    float64   `gorm:"column:base_price;type:decimal(10,2);not null"`
	CurrentStock int       `gorm:"column:current_stock;not null;default:0"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	PriceHistory string    `gorm:"column:price_history;type:text"`
	CreationDate time.Time `gorm:"column:creation_date;type:datetime"`
}

func (ProductModel) TableName() string { return "products" }

// CategoryModel 类目数据库模型，子类目以 JSON 字符串保存
type CategoryModel struct {
	gorm.Model
	CategoryID    string `gorm:"column:category_id;type:varchar(36);uniqueIndex;not null"`
	Name          string `gorm:"column:name;type:varchar(255);not null"`
	Subcategories string `gorm:"column:subcategories;type:text"`
}

func (CategoryModel) TableName() string { return "categories" }

// TransactionModel 交易数据库模型
type TransactionModel struct {
	gorm.Model
	TransactionID string                 `gorm:"column:transaction_id;type:varchar(36);uniqueIndex;not null"`
	SessionID     *string                `gorm:"column:session_id;type:varchar(36);index"`
	UserID        string                 `gorm:"column:user_id;type:varchar(36);index;not null"`
	Timestamp     time.Time              `gorm:"column:timestamp;type:datetime"`
	Subtotal      float64                `gorm:"column:subtotal;type:decimal(10,2);not null"`
	Discount      float64                `gorm:"column:discount;type:decimal(10,2);not null"`
	Total         float64                `gorm:"column:total;type:decimal(10,2);not null"`
	PaymentMethod string                 `gorm:"column:payment_method;type:varchar(30)"`
	Status        string                 `gorm:"column:status;type:varchar(20)"`
	Items         []TransactionItemModel `gorm:"foreignKey:TransactionRef"`
}

func (TransactionModel) TableName() string { return "transactions" }

// TransactionItemModel 交易明细数据库模型
type TransactionItemModel struct {
	gorm.Model
	TransactionRef uint    `gorm:"column:transaction_ref;index;not null"`
	ProductID      string  `gorm:"column:product_id;type:varchar(36);index;not null"`
	Quantity       int     `gorm:"column:quantity;not null"`
	UnitPrice      float64 `gorm:"column:unit_price;type:decimal(10,2);not null"`
	Subtotal       float64 `gorm:"column:subtotal;type:decimal(10,2);not null"`
}

func (TransactionItemModel) TableName() string { return "transaction_items" }

// mapping helpers

func toUserModel(u *catalog.User) *UserModel {
	return &UserModel{
		UserID:           u.UserID,
		City:             u.Geo.City,
		State:            u.Geo.State,
		Country:          u.Geo.Country,
		RegistrationDate: u.RegistrationDate,
		LastActive:       u.LastActive,
	}
}

func toProductModel(p *catalog.Product) *ProductModel {
	return &ProductModel{
		ProductID:    p.ProductID,
		Name:         p.Name,
		CategoryID:   p.CategoryID,
		BasePrice:    p.BasePrice,
		CurrentStock: p.CurrentStock,
		IsActive:     p.IsActive,
		PriceHistory: utils.ToJSON(p.PriceHistory),
		CreationDate: p.CreationDate,
	}
}

func toCategoryModel(c *catalog.Category) *CategoryModel {
	return &CategoryModel{
		CategoryID:    c.CategoryID,
		Name:          c.Name,
		Subcategories: utils.ToJSON(c.Subcategories),
	}
}

func toTransactionModel(t *transaction.Transaction) *TransactionModel {
	m := &TransactionModel{
		TransactionID: t.TransactionID,
		SessionID:     t.SessionID,
		UserID:        t.UserID,
		Timestamp:     t.Timestamp,
		Subtotal:      t.Subtotal,
		Discount:      t.Discount,
		Total:         t.Total,
		PaymentMethod: t.PaymentMethod,
		Status:        t.Status,
	}
	for _, item := range t.Items {
		m.Items = append(m.Items, TransactionItemModel{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}
	return m
}
