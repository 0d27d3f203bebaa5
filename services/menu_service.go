package services

import (
	"strings"
	"time"

	"catering/entity"
	"catering/repository"
	"catering/rules"

	"github.com/shopspring/decimal"
)

type MenuService struct {
	Repo *repository.MenuRepository
	Env  *RuleEnv
	// DemoMode fills missing optional fields with id-derived seed values.
	DemoMode bool
}

func NewMenuService(repo *repository.MenuRepository, env *RuleEnv, demo bool) *MenuService {
	return &MenuService{Repo: repo, Env: env, DemoMode: demo}
}

// MenuView is a menu with everything derived for the caller at request time.
type MenuView struct {
	rules.MenuItem
	rules.MenuClassification
	CanEdit   bool `json:"canEdit"`
	CanDelete bool `json:"canDelete"`
}

type MenuFilter struct {
	Query          string
	Status         string
	Category       string
	OnlyAvailable  bool
	ShowOutOfStock bool
}

type MenuInput struct {
	MenuName     string           `json:"menuName" binding:"required"`
	Description  string           `json:"description"`
	Price        decimal.Decimal  `json:"price"`
	Cost         *decimal.Decimal `json:"cost"`
	StockLevel   *int             `json:"stockLevel"`
	Category     string           `json:"category"`
	Seasonal     *bool            `json:"seasonal"`
	Season       string           `json:"season"`
	Popularity   *int             `json:"popularity"`
	ActiveOrders *int             `json:"activeOrders"`
}

func (in MenuInput) validate() error {
	var issues []string
	if strings.TrimSpace(in.MenuName) == "" {
		issues = append(issues, "menu name is required")
	}
	if !in.Price.IsPositive() {
		issues = append(issues, "price must be positive")
	}
	if in.Cost != nil && in.Cost.IsNegative() {
		issues = append(issues, "cost must not be negative")
	}
	if in.StockLevel != nil && *in.StockLevel < 0 {
		issues = append(issues, "stock level must not be negative")
	}
	if in.ActiveOrders != nil && *in.ActiveOrders < 0 {
		issues = append(issues, "active orders must not be negative")
	}
	if in.Popularity != nil && (*in.Popularity < 0 || *in.Popularity > 100) {
		issues = append(issues, "popularity must be within [0,100]")
	}
	switch rules.Category(in.Category) {
	case "", rules.CategoryBreakfast, rules.CategoryLunch, rules.CategoryDinner, rules.CategoryBeverage:
	default:
		issues = append(issues, "unknown category "+in.Category)
	}
	switch rules.Season(in.Season) {
	case "", rules.SeasonSpring, rules.SeasonSummer, rules.SeasonFall, rules.SeasonWinter:
	default:
		issues = append(issues, "unknown season "+in.Season)
	}
	if len(issues) > 0 {
		return &rules.ValidationError{Issues: issues}
	}
	return nil
}

func (in MenuInput) apply(m *entity.Menu) {
	m.MenuName = strings.TrimSpace(in.MenuName)
	m.Description = in.Description
	m.Price = in.Price
	if in.Cost != nil {
		m.Cost = decimal.NewNullDecimal(*in.Cost)
	}
	if in.StockLevel != nil {
		m.StockLevel = in.StockLevel
	}
	if in.Category != "" {
		m.Category = in.Category
	}
	if in.Seasonal != nil {
		m.Seasonal = in.Seasonal
	}
	if in.Season != "" {
		m.Season = in.Season
	}
	if in.Popularity != nil {
		m.Popularity = in.Popularity
	}
	if in.ActiveOrders != nil {
		m.ActiveOrders = in.ActiveOrders
	}
}

func (s *MenuService) item(m entity.Menu, caller Caller) rules.MenuItem {
	item, gaps := menuItem(m)
	if s.DemoMode {
		item = rules.EnrichMenu(item, gaps, caller.UserID)
	}
	return item
}

func (s *MenuService) catalogue(caller Caller) ([]rules.MenuItem, error) {
	menus, err := s.Repo.FindAll()
	if err != nil {
		return nil, s.Env.fetchFailed("menus", err)
	}
	items := make([]rules.MenuItem, len(menus))
	for i, m := range menus {
		items[i] = s.item(m, caller)
	}
	return items, nil
}

func (s *MenuService) view(m rules.MenuItem, caller Caller, cfg rules.RuleConfig, now time.Time) MenuView {
	res := rules.Resource{Kind: rules.KindMenu, OwnerID: m.CreatedBy}
	return MenuView{
		MenuItem:           m,
		MenuClassification: rules.ClassifyMenu(m, cfg, now),
		CanEdit:            s.Env.decide(caller, rules.ActionEdit, res, now).Allowed,
		CanDelete:          s.Env.decide(caller, rules.ActionDelete, res, now).Allowed,
	}
}

// List returns the filtered catalogue in business priority order.
func (s *MenuService) List(caller Caller, f MenuFilter) ([]MenuView, error) {
	cfg, now := s.Env.snapshot()
	if err := s.Env.decide(caller, rules.ActionView, rules.Resource{Kind: rules.KindMenu}, now).Err(); err != nil {
		return nil, err
	}
	items, err := s.catalogue(caller)
	if err != nil {
		return nil, err
	}

	out := make([]MenuView, 0, len(items))
	for _, m := range rules.SortMenus(items, cfg, now) {
		v := s.view(m, caller, cfg, now)
		if f.Query != "" && !containsFold(m.Name, f.Query) && !containsFold(m.Description, f.Query) {
			continue
		}
		if f.Status != "" && v.Status.Code != f.Status {
			continue
		}
		if f.Category != "" && string(m.Category) != f.Category {
			continue
		}
		if f.OnlyAvailable && !v.IsAvailable {
			continue
		}
		if !f.ShowOutOfStock && m.StockLevel == 0 {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (s *MenuService) Get(caller Caller, id uint) (MenuView, error) {
	cfg, now := s.Env.snapshot()
	if err := s.Env.decide(caller, rules.ActionView, rules.Resource{Kind: rules.KindMenu}, now).Err(); err != nil {
		return MenuView{}, err
	}
	m, err := s.Repo.FindByID(id)
	if err != nil {
		return MenuView{}, notFound(err)
	}
	return s.view(s.item(*m, caller), caller, cfg, now), nil
}

func (s *MenuService) Metrics(caller Caller) (rules.MenuMetrics, error) {
	cfg, now := s.Env.snapshot()
	if err := s.Env.decide(caller, rules.ActionViewMetrics, rules.Resource{Kind: rules.KindMenu}, now).Err(); err != nil {
		return rules.MenuMetrics{}, err
	}
	items, err := s.catalogue(caller)
	if err != nil {
		return rules.MenuMetrics{}, err
	}
	return rules.SummarizeMenus(items, cfg, now), nil
}

// Create stores a new menu owned by the caller. A low margin is reported in
// the returned view but does not block.
func (s *MenuService) Create(caller Caller, in MenuInput) (MenuView, error) {
	cfg, now := s.Env.snapshot()
	if err := s.Env.decide(caller, rules.ActionCreate, rules.Resource{Kind: rules.KindMenu}, now).Err(); err != nil {
		return MenuView{}, err
	}
	if err := in.validate(); err != nil {
		return MenuView{}, err
	}
	owner := caller.UserID
	m := entity.Menu{CreatedByID: &owner}
	in.apply(&m)
	if err := s.Repo.Create(&m); err != nil {
		return MenuView{}, err
	}
	return s.view(s.item(m, caller), caller, cfg, now), nil
}

func (s *MenuService) Update(caller Caller, id uint, in MenuInput) (MenuView, error) {
	cfg, now := s.Env.snapshot()
	m, err := s.Repo.FindByID(id)
	if err != nil {
		return MenuView{}, notFound(err)
	}
	cur := s.item(*m, caller)
	res := rules.Resource{Kind: rules.KindMenu, OwnerID: cur.CreatedBy}
	if err := s.Env.decide(caller, rules.ActionEdit, res, now).Err(); err != nil {
		return MenuView{}, err
	}
	if err := in.validate(); err != nil {
		return MenuView{}, err
	}
	in.apply(m)
	if err := s.Repo.Update(m); err != nil {
		return MenuView{}, err
	}
	return s.view(s.item(*m, caller), caller, cfg, now), nil
}

// Delete removes a menu. Blocking problems fail with a ValidationError;
// warnings fail with an AdvisoryError unless confirmed is set.
func (s *MenuService) Delete(caller Caller, id uint, confirmed bool) error {
	_, now := s.Env.snapshot()
	items, err := s.catalogue(caller)
	if err != nil {
		return err
	}
	var target *rules.MenuItem
	for i := range items {
		if items[i].ID == id {
			target = &items[i]
			break
		}
	}
	if target == nil {
		return ErrNotFound
	}
	res := rules.Resource{Kind: rules.KindMenu, OwnerID: target.CreatedBy}
	if err := s.Env.decide(caller, rules.ActionDelete, res, now).Err(); err != nil {
		return err
	}
	if err := rules.ValidateDeletion(*target, items).Err(confirmed); err != nil {
		return err
	}
	if err := s.Repo.Delete(id); err != nil {
		return err
	}
	s.Env.Log.Info().Uint("menuId", id).Uint("by", caller.UserID).Msg("menu deleted")
	return nil
}
