package api

import (
	"net/url"
	"strconv"

	pkgapi "github.com/iudanet/marketdash/pkg/api"
)

// query собирает параметры запроса, пропуская незаданные фильтры
type query struct {
	values url.Values
}

func newQuery() *query {
	return &query{values: url.Values{}}
}

func (q *query) addInt(key string, v *int) *query {
	if v != nil {
		q.values.Set(key, strconv.Itoa(*v))
	}
	return q
}

func (q *query) addFloat(key string, v *float64) *query {
	if v != nil {
		q.values.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
	return q
}

func (q *query) addBool(key string, v *bool) *query {
	if v != nil {
		q.values.Set(key, strconv.FormatBool(*v))
	}
	return q
}

func (q *query) addString(key string, v *string) *query {
	if v != nil {
		q.values.Set(key, *v)
	}
	return q
}

// endpoint добавляет строку запроса к пути, если есть хотя бы один параметр
func (q *query) endpoint(path string) string {
	if len(q.values) == 0 {
		return path
	}
	return path + "?" + q.values.Encode()
}

func nftQuery(f *pkgapi.NFTFilter) *query {
	q := newQuery()
	if f == nil {
		return q
	}
	return q.addInt("page", f.Page).
		addInt("limit", f.Limit).
		addString("category", f.Category).
		addFloat("minPrice", f.MinPrice).
		addFloat("maxPrice", f.MaxPrice).
		addBool("isListed", f.IsListed).
		addString("creatorId", f.CreatorID).
		addString("ownerId", f.OwnerID).
		addString("collectionId", f.CollectionID).
		addString("search", f.Search)
}

func collectionQuery(f *pkgapi.CollectionFilter) *query {
	q := newQuery()
	if f == nil {
		return q
	}
	return q.addInt("page", f.Page).
		addInt("limit", f.Limit).
		addString("creatorId", f.CreatorID).
		addString("query", f.Query)
}

func auctionQuery(f *pkgapi.AuctionFilter) *query {
	q := newQuery()
	if f == nil {
		return q
	}
	return q.addInt("page", f.Page).
		addInt("limit", f.Limit).
		addBool("isActive", f.IsActive).
		addString("creatorId", f.CreatorID).
		addString("category", f.Category).
		addFloat("minPrice", f.MinPrice).
		addFloat("maxPrice", f.MaxPrice)
}

func transactionQuery(f *pkgapi.TransactionFilter) *query {
	q := newQuery()
	if f == nil {
		return q
	}
	var txType *string
	if f.Type != nil {
		s := string(*f.Type)
		txType = &s
	}
	return q.addInt("page", f.Page).
		addInt("limit", f.Limit).
		addString("userId", f.UserID).
		addString("nftId", f.NFTID).
		addString("type", txType).
		addFloat("minAmount", f.MinAmount).
		addFloat("maxAmount", f.MaxAmount)
}

func userQuery(f *pkgapi.UserFilter) *query {
	q := newQuery()
	if f == nil {
		return q
	}
	var role *string
	if f.Role != nil {
		s := string(*f.Role)
		role = &s
	}
	return q.addInt("page", f.Page).
		addInt("limit", f.Limit).
		addString("search", f.Search).
		addString("role", role).
		addBool("isVerified", f.IsVerified)
}
