package api

import (
	"encoding/json"
	"time"

	"github.com/iudanet/marketdash/internal/models"
)

// Page представляет страницу списка
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NFT представляет токен на маркетплейсе
type NFT struct {
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	Price        *float64        `json:"price,omitempty"`
	CollectionID *string         `json:"collectionId,omitempty"`
	Attributes   json.RawMessage `json:"attributes,omitempty"`
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Category     string          `json:"category,omitempty"`
	CreatorID    string          `json:"creatorId"`
	OwnerID      string          `json:"ownerId"`
	IsListed     bool            `json:"isListed"`
}

// NFTFilter задает параметры выборки GET /api/nfts
type NFTFilter struct {
	Page         *int
	Limit        *int
	Category     *string
	MinPrice     *float64
	MaxPrice     *float64
	IsListed     *bool
	CreatorID    *string
	OwnerID      *string
	CollectionID *string
	Search       *string
}

// Collection представляет коллекцию NFT
type Collection struct {
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatorID   string    `json:"creatorId"`
}

// CollectionFilter задает параметры выборки GET /api/collections
type CollectionFilter struct {
	Page      *int
	Limit     *int
	CreatorID *string
	Query     *string
}

// Auction представляет аукцион
type Auction struct {
	StartsAt      time.Time `json:"startsAt"`
	EndsAt        time.Time `json:"endsAt"`
	CurrentBid    *float64  `json:"currentBid,omitempty"`
	ID            string    `json:"id"`
	NFTID         string    `json:"nftId"`
	CreatorID     string    `json:"creatorId"`
	Category      string    `json:"category,omitempty"`
	StartingPrice float64   `json:"startingPrice"`
	IsActive      bool      `json:"isActive"`
}

// AuctionFilter задает параметры выборки GET /api/auctions
type AuctionFilter struct {
	Page      *int
	Limit     *int
	IsActive  *bool
	CreatorID *string
	Category  *string
	MinPrice  *float64
	MaxPrice  *float64
}

// Bid представляет ставку на аукционе
type Bid struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
	AuctionID string    `json:"auctionId"`
	BidderID  string    `json:"bidderId"`
	Amount    float64   `json:"amount"`
}

// PlaceBidRequest представляет запрос на ставку
type PlaceBidRequest struct {
	Amount float64 `json:"amount"`
}

// TransactionType определяет тип транзакции
type TransactionType string

const (
	TransactionSale     TransactionType = "SALE"
	TransactionMint     TransactionType = "MINT"
	TransactionTransfer TransactionType = "TRANSFER"
	TransactionBid      TransactionType = "BID"
)

// Transaction представляет транзакцию на маркетплейсе
type Transaction struct {
	CreatedAt time.Time       `json:"createdAt"`
	FromID    *string         `json:"fromUserId,omitempty"`
	ToID      *string         `json:"toUserId,omitempty"`
	TxHash    *string         `json:"txHash,omitempty"`
	ID        string          `json:"id"`
	NFTID     string          `json:"nftId"`
	Type      TransactionType `json:"type"`
	Status    string          `json:"status,omitempty"`
	Amount    float64         `json:"amount"`
}

// TransactionFilter задает параметры выборки GET /api/transactions
type TransactionFilter struct {
	Page      *int
	Limit     *int
	UserID    *string
	NFTID     *string
	Type      *TransactionType
	MinAmount *float64
	MaxAmount *float64
}

// UserFilter задает параметры выборки GET /api/users
type UserFilter struct {
	Page       *int
	Limit      *int
	Search     *string
	Role       *models.Role
	IsVerified *bool
}

// UpdateUserRequest представляет запрос PUT /api/users/{id}
type UpdateUserRequest struct {
	FirstName     *string      `json:"firstName,omitempty"`
	LastName      *string      `json:"lastName,omitempty"`
	Avatar        *string      `json:"avatar,omitempty"`
	Bio           *string      `json:"bio,omitempty"`
	WalletAddress *string      `json:"walletAddress,omitempty"`
	Role          *models.Role `json:"role,omitempty"`
	IsActive      *bool        `json:"isActive,omitempty"`
	IsVerified    *bool        `json:"isVerified,omitempty"`
}

// SystemSetting представляет системную настройку
type SystemSetting struct {
	UpdatedAt   *time.Time      `json:"updatedAt,omitempty"`
	Key         string          `json:"key"`
	Description string          `json:"description,omitempty"`
	Value       json.RawMessage `json:"value"`
}

// DeleteSettingRequest представляет тело DELETE /api/admin/settings
type DeleteSettingRequest struct {
	Key string `json:"key"`
}

// DashboardStats представляет сводку GET /api/admin/dashboard
type DashboardStats struct {
	TotalUsers        int     `json:"totalUsers"`
	ActiveUsers       int     `json:"activeUsers"`
	TotalNFTs         int     `json:"totalNfts"`
	TotalCollections  int     `json:"totalCollections"`
	ActiveAuctions    int     `json:"activeAuctions"`
	TotalTransactions int     `json:"totalTransactions"`
	TotalVolume       float64 `json:"totalVolume"`
}
