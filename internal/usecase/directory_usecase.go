package usecase

import (
	"net/http"
	"strings"

	"github.com/i-m-samarth-cs/kisan-connect/internal/domain/model"
	"github.com/i-m-samarth-cs/kisan-connect/internal/session"
	"github.com/i-m-samarth-cs/kisan-connect/internal/store"
)

// NGO一覧で選べる州
var NGOStates = []string{
	model.AllIndia, "Maharashtra", "Punjab", "Gujarat", "Karnataka",
	"Tamil Nadu", "Uttar Pradesh", "Rajasthan", "Madhya Pradesh", "West Bengal",
}

// ニュースのカテゴリ
var NewsCategories = []string{"all", "technology", "policy", "market", "weather", "success-story"}

// DirectoryUsecase は農家・NGO・ニュースの閲覧（デモデータのみ）
type DirectoryUsecase struct {
	notify *Notifier
}

// DI
func NewDirectoryUsecase(notify *Notifier) *DirectoryUsecase {
	return &DirectoryUsecase{notify: notify}
}

func (u *DirectoryUsecase) Farmers(sess *session.Session) []model.Farmer {
	return sess.Store.State().Farmers
}

// Sponsor は農家を支援済みにする（ログイン必須、役割は問わない）
func (u *DirectoryUsecase) Sponsor(sess *session.Session, farmerID string) (model.Farmer, error) {
	s := sess.Store.State()
	if s.User == nil {
		u.notify.Notify(sess.Store, model.NotifyWarning, MsgLoginToSponsor, ttlNormal)
		return model.Farmer{}, NewHTTPError(http.StatusUnauthorized, MsgLoginToSponsor)
	}
	if _, ok := findFarmer(s.Farmers, farmerID); !ok {
		return model.Farmer{}, NewHTTPError(http.StatusNotFound, "farmer not found")
	}
	s = sess.Store.Dispatch(store.SponsorFarmer{FarmerID: farmerID})
	u.notify.Notify(sess.Store, model.NotifySuccess, MsgFarmSponsored, ttlNormal)
	f, _ := findFarmer(s.Farmers, farmerID)
	return f, nil
}

type NGOListOutput struct {
	States   []string    `json:"states"`
	Selected string      `json:"selected"`
	Items    []model.NGO `json:"items"`
}

// NGOs は州で絞り込む（"All India" なら全件）
func (u *DirectoryUsecase) NGOs(sess *session.Session, state string) NGOListOutput {
	if strings.TrimSpace(state) == "" {
		state = model.AllIndia
	}
	return NGOListOutput{
		States:   NGOStates,
		Selected: state,
		Items:    FilterNGOs(sess.Store.State().NGOs, state),
	}
}

func FilterNGOs(ngos []model.NGO, state string) []model.NGO {
	out := make([]model.NGO, 0, len(ngos))
	for _, n := range ngos {
		if state == model.AllIndia || n.State == state {
			out = append(out, n)
		}
	}
	return out
}

type NewsListOutput struct {
	Categories []string            `json:"categories"`
	Items      []model.NewsArticle `json:"items"`
}

func (u *DirectoryUsecase) News(sess *session.Session, category string, search string) NewsListOutput {
	return NewsListOutput{
		Categories: NewsCategories,
		Items:      FilterNews(sess.Store.State().NewsArticles, category, search),
	}
}

func (u *DirectoryUsecase) Article(sess *session.Session, id string) (model.NewsArticle, error) {
	for _, a := range sess.Store.State().NewsArticles {
		if a.ID == id {
			return a, nil
		}
	}
	return model.NewsArticle{}, NewHTTPError(http.StatusNotFound, "article not found")
}

// FilterNews はカテゴリ一致かつタイトル・要約・タグのどれかに部分一致
func FilterNews(articles []model.NewsArticle, category string, search string) []model.NewsArticle {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]model.NewsArticle, 0, len(articles))
	for _, a := range articles {
		if category != "" && category != CategoryAll && a.Category != category {
			continue
		}
		if q != "" && !articleMatches(a, q) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func articleMatches(a model.NewsArticle, q string) bool {
	if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Summary), q) {
		return true
	}
	for _, t := range a.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}

func findFarmer(farmers []model.Farmer, id string) (model.Farmer, bool) {
	for _, f := range farmers {
		if f.ID == id {
			return f, true
		}
	}
	return model.Farmer{}, false
}
