package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/iudanet/marketdash/internal/models"
	pkgapi "github.com/iudanet/marketdash/pkg/api"
)

// ListNFTs возвращает страницу NFT по фильтру
func (c *Client) ListNFTs(ctx context.Context, filter *pkgapi.NFTFilter) *Result[pkgapi.Page[pkgapi.NFT]] {
	return Request[pkgapi.Page[pkgapi.NFT]](ctx, c, nftQuery(filter).endpoint("/api/nfts"), RequestOptions{})
}

// GetNFT возвращает NFT по идентификатору
func (c *Client) GetNFT(ctx context.Context, id string) *Result[pkgapi.NFT] {
	return Request[pkgapi.NFT](ctx, c, "/api/nfts/"+url.PathEscape(id), RequestOptions{})
}

// CreateNFT создает NFT
func (c *Client) CreateNFT(ctx context.Context, nft pkgapi.NFT) *Result[pkgapi.NFT] {
	return Request[pkgapi.NFT](ctx, c, "/api/nfts", RequestOptions{
		Method: http.MethodPost,
		Body:   nft,
	})
}

// UpdateNFT обновляет NFT
func (c *Client) UpdateNFT(ctx context.Context, id string, nft pkgapi.NFT) *Result[pkgapi.NFT] {
	return Request[pkgapi.NFT](ctx, c, "/api/nfts/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodPut,
		Body:   nft,
	})
}

// DeleteNFT удаляет NFT
func (c *Client) DeleteNFT(ctx context.Context, id string) *Result[struct{}] {
	return Request[struct{}](ctx, c, "/api/nfts/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodDelete,
	})
}

// ListCollections возвращает страницу коллекций по фильтру
func (c *Client) ListCollections(ctx context.Context, filter *pkgapi.CollectionFilter) *Result[pkgapi.Page[pkgapi.Collection]] {
	return Request[pkgapi.Page[pkgapi.Collection]](ctx, c, collectionQuery(filter).endpoint("/api/collections"), RequestOptions{})
}

// GetCollection возвращает коллекцию по идентификатору
func (c *Client) GetCollection(ctx context.Context, id string) *Result[pkgapi.Collection] {
	return Request[pkgapi.Collection](ctx, c, "/api/collections/"+url.PathEscape(id), RequestOptions{})
}

// CreateCollection создает коллекцию
func (c *Client) CreateCollection(ctx context.Context, collection pkgapi.Collection) *Result[pkgapi.Collection] {
	return Request[pkgapi.Collection](ctx, c, "/api/collections", RequestOptions{
		Method: http.MethodPost,
		Body:   collection,
	})
}

// UpdateCollection обновляет коллекцию
func (c *Client) UpdateCollection(ctx context.Context, id string, collection pkgapi.Collection) *Result[pkgapi.Collection] {
	return Request[pkgapi.Collection](ctx, c, "/api/collections/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodPut,
		Body:   collection,
	})
}

// DeleteCollection удаляет коллекцию
func (c *Client) DeleteCollection(ctx context.Context, id string) *Result[struct{}] {
	return Request[struct{}](ctx, c, "/api/collections/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodDelete,
	})
}

// ListAuctions возвращает страницу аукционов по фильтру
func (c *Client) ListAuctions(ctx context.Context, filter *pkgapi.AuctionFilter) *Result[pkgapi.Page[pkgapi.Auction]] {
	return Request[pkgapi.Page[pkgapi.Auction]](ctx, c, auctionQuery(filter).endpoint("/api/auctions"), RequestOptions{})
}

// CreateAuction создает аукцион
func (c *Client) CreateAuction(ctx context.Context, auction pkgapi.Auction) *Result[pkgapi.Auction] {
	return Request[pkgapi.Auction](ctx, c, "/api/auctions", RequestOptions{
		Method: http.MethodPost,
		Body:   auction,
	})
}

// ListBids возвращает ставки аукциона
func (c *Client) ListBids(ctx context.Context, auctionID string) *Result[[]pkgapi.Bid] {
	return Request[[]pkgapi.Bid](ctx, c, "/api/auctions/"+url.PathEscape(auctionID)+"/bids", RequestOptions{})
}

// PlaceBid делает ставку на аукционе
func (c *Client) PlaceBid(ctx context.Context, auctionID string, bid pkgapi.PlaceBidRequest) *Result[pkgapi.Bid] {
	return Request[pkgapi.Bid](ctx, c, "/api/auctions/"+url.PathEscape(auctionID)+"/bids", RequestOptions{
		Method: http.MethodPost,
		Body:   bid,
	})
}

// ListTransactions возвращает страницу транзакций по фильтру
func (c *Client) ListTransactions(ctx context.Context, filter *pkgapi.TransactionFilter) *Result[pkgapi.Page[pkgapi.Transaction]] {
	return Request[pkgapi.Page[pkgapi.Transaction]](ctx, c, transactionQuery(filter).endpoint("/api/transactions"), RequestOptions{})
}

// CreateTransaction создает транзакцию
func (c *Client) CreateTransaction(ctx context.Context, tx pkgapi.Transaction) *Result[pkgapi.Transaction] {
	return Request[pkgapi.Transaction](ctx, c, "/api/transactions", RequestOptions{
		Method: http.MethodPost,
		Body:   tx,
	})
}

// ListUsers возвращает страницу пользователей по фильтру
func (c *Client) ListUsers(ctx context.Context, filter *pkgapi.UserFilter) *Result[pkgapi.Page[models.User]] {
	return Request[pkgapi.Page[models.User]](ctx, c, userQuery(filter).endpoint("/api/users"), RequestOptions{})
}

// GetUser возвращает пользователя по идентификатору
func (c *Client) GetUser(ctx context.Context, id string) *Result[models.User] {
	return Request[models.User](ctx, c, "/api/users/"+url.PathEscape(id), RequestOptions{})
}

// UpdateUser обновляет пользователя
func (c *Client) UpdateUser(ctx context.Context, id string, req pkgapi.UpdateUserRequest) *Result[models.User] {
	return Request[models.User](ctx, c, "/api/users/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodPut,
		Body:   req,
	})
}

// DeleteUser удаляет пользователя
func (c *Client) DeleteUser(ctx context.Context, id string) *Result[struct{}] {
	return Request[struct{}](ctx, c, "/api/users/"+url.PathEscape(id), RequestOptions{
		Method: http.MethodDelete,
	})
}

// AdminDashboard возвращает сводную статистику
func (c *Client) AdminDashboard(ctx context.Context) *Result[pkgapi.DashboardStats] {
	return Request[pkgapi.DashboardStats](ctx, c, "/api/admin/dashboard", RequestOptions{})
}

// SystemSettings возвращает системные настройки
func (c *Client) SystemSettings(ctx context.Context) *Result[[]pkgapi.SystemSetting] {
	return Request[[]pkgapi.SystemSetting](ctx, c, "/api/admin/settings", RequestOptions{})
}

// UpdateSystemSettings обновляет набор системных настроек
func (c *Client) UpdateSystemSettings(ctx context.Context, settings []pkgapi.SystemSetting) *Result[[]pkgapi.SystemSetting] {
	return Request[[]pkgapi.SystemSetting](ctx, c, "/api/admin/settings", RequestOptions{
		Method: http.MethodPut,
		Body:   settings,
	})
}

// CreateSystemSetting создает системную настройку
func (c *Client) CreateSystemSetting(ctx context.Context, setting pkgapi.SystemSetting) *Result[pkgapi.SystemSetting] {
	return Request[pkgapi.SystemSetting](ctx, c, "/api/admin/settings", RequestOptions{
		Method: http.MethodPost,
		Body:   setting,
	})
}

// DeleteSystemSetting удаляет системную настройку по ключу
func (c *Client) DeleteSystemSetting(ctx context.Context, key string) *Result[struct{}] {
	return Request[struct{}](ctx, c, "/api/admin/settings", RequestOptions{
		Method: http.MethodDelete,
		Body:   pkgapi.DeleteSettingRequest{Key: key},
	})
}
