package itinerary

import "regexp"

type Category string

const (
	CategoryBreakfast Category = "breakfast"
	CategoryLunch     Category = "lunch"
	CategoryDinner    Category = "dinner"
	CategoryLodging   Category = "lodging"
	CategoryAdmission Category = "admission"
	CategoryTransit   Category = "transit"
	CategoryShopping  Category = "shopping"
)

// CostBasis says how a rule's amount scales.
type CostBasis int

const (
	PerTraveler CostBasis = iota
	PerRoomNight
)

// CategoryRule maps activity text to a category and a reference cost.
// Rules are evaluated top to bottom, first match wins.
type CategoryRule struct {
	Category Category
	Pattern  *regexp.Regexp
	Basis    CostBasis
	Amount   float64 // per traveler; ignored for PerRoomNight
}

type BudgetLevel string

const (
	LevelHigh   BudgetLevel = "high"
	LevelMedium BudgetLevel = "medium"
	LevelLow    BudgetLevel = "low"
)

// Tier is one row of the budget tier table. Both the per-night lodging
// classification and the fallback cost multiplier read from it so the two
// stay consistent.
type Tier struct {
	Level        BudgetLevel
	MinPerNight  float64 // lower bound, inclusive
	PerRoomNight float64
	Label        string
	MinBudget    float64 // lower bound on the whole-trip budget, inclusive
	Multiplier   float64
}

// Slot is an auto-inserted activity.
type Slot struct {
	Category    Category
	Time        string
	Activity    string
	Location    string
	Description string
}

type TemplateActivity struct {
	Time        string
	Activity    string
	Location    string
	Description string
	Cost        float64
}

// Tables holds the read-only reference data used by the enricher and the
// fallback synthesizer.
type Tables struct {
	Rules              []CategoryRule
	DefaultPerTraveler float64
	Meals              []Slot // appended in this order when missing
	Lodging            Slot
	Tiers              []Tier // ordered from most to least expensive
	TravelersPerRoom   int

	Templates               map[string][]TemplateActivity
	DefaultTemplate         []TemplateActivity
	BaselineRecommendations []string
	DestinationTips         map[string][]string
}

// Rule returns the first rule for a category.
func (t Tables) Rule(c Category) (CategoryRule, bool) {
	for _, r := range t.Rules {
		if r.Category == c {
			return r, true
		}
	}
	return CategoryRule{}, false
}

// Matches reports whether text hits the pattern of the given category.
func (t Tables) Matches(c Category, text string) bool {
	r, ok := t.Rule(c)
	return ok && r.Pattern.MatchString(text)
}

// TierForNight picks the tier by per-night budget.
func (t Tables) TierForNight(perNight float64) Tier {
	for _, tier := range t.Tiers {
		if perNight >= tier.MinPerNight {
			return tier
		}
	}
	return t.Tiers[len(t.Tiers)-1]
}

// TierForBudget picks the tier by whole-trip budget.
func (t Tables) TierForBudget(budget float64) Tier {
	for _, tier := range t.Tiers {
		if budget >= tier.MinBudget {
			return tier
		}
	}
	return t.Tiers[len(t.Tiers)-1]
}

// Template returns the activity template for an exact destination match.
func (t Tables) Template(destination string) ([]TemplateActivity, bool) {
	if tpl, ok := t.Templates[destination]; ok {
		return tpl, true
	}
	return t.DefaultTemplate, false
}

func DefaultTables() Tables {
	return Tables{
		Rules: []CategoryRule{
			{Category: CategoryBreakfast, Pattern: regexp.MustCompile(`早|早餐|早饭|(?i:\bbreakfast\b)`), Basis: PerTraveler, Amount: 30},
			{Category: CategoryLunch, Pattern: regexp.MustCompile(`午|午餐|午饭|中餐|(?i:\blunch\b)`), Basis: PerTraveler, Amount: 60},
			{Category: CategoryDinner, Pattern: regexp.MustCompile(`晚|晚餐|晚饭|夜宵|(?i:\b(dinner|supper)\b)`), Basis: PerTraveler, Amount: 80},
			{Category: CategoryLodging, Pattern: regexp.MustCompile(`住|住宿|酒店|民宿|客栈|(?i:\b(hotel|hostel|lodging|check-in)\b)`), Basis: PerRoomNight},
			{Category: CategoryAdmission, Pattern: regexp.MustCompile(`门票|景点|博物|美术|展|塔|登顶|(?i:\b(ticket|museum|gallery|exhibition|tower)\b)`), Basis: PerTraveler, Amount: 80},
			{Category: CategoryTransit, Pattern: regexp.MustCompile(`交通|地铁|打车|出租|巴士|公交|高铁|火车|飞机|(?i:\b(metro|subway|taxi|bus|train|flight|transfer)\b)`), Basis: PerTraveler, Amount: 40},
			{Category: CategoryShopping, Pattern: regexp.MustCompile(`购物|夜市|特产|纪念|(?i:\b(shopping|market|souvenirs?)\b)`), Basis: PerTraveler, Amount: 150},
		},
		DefaultPerTraveler: 100,
		Meals: []Slot{
			{Category: CategoryBreakfast, Time: "08:00", Activity: "早餐", Location: "酒店/附近餐厅", Description: "简餐/当地早餐"},
			{Category: CategoryLunch, Time: "12:00", Activity: "午餐", Location: "当地餐厅", Description: "特色简餐"},
			{Category: CategoryDinner, Time: "18:00", Activity: "晚餐", Location: "特色餐厅", Description: "当地特色菜"},
		},
		Lodging: Slot{Category: CategoryLodging, Time: "22:00", Activity: "住宿", Location: "市区酒店/民宿"},
		Tiers: []Tier{
			{Level: LevelHigh, MinPerNight: 600, PerRoomNight: 600, Label: "高档", MinBudget: 5000, Multiplier: 1.5},
			{Level: LevelMedium, MinPerNight: 350, PerRoomNight: 350, Label: "舒适", MinBudget: 2000, Multiplier: 1},
			{Level: LevelLow, MinPerNight: 0, PerRoomNight: 200, Label: "经济", MinBudget: 0, Multiplier: 0.7},
		},
		TravelersPerRoom: 2,
		Templates: map[string][]TemplateActivity{
			"北京": {
				{Time: "08:00", Activity: "天安门广场", Location: "天安门广场", Description: "观看升旗仪式，感受庄严氛围", Cost: 0},
				{Time: "10:00", Activity: "故宫博物院", Location: "故宫", Description: "参观明清两代皇宫，了解历史文化", Cost: 60},
				{Time: "14:00", Activity: "颐和园", Location: "颐和园", Description: "游览皇家园林，欣赏湖光山色", Cost: 30},
				{Time: "18:00", Activity: "王府井", Location: "王府井大街", Description: "品尝北京小吃，购买纪念品", Cost: 150},
			},
			"上海": {
				{Time: "09:00", Activity: "外滩", Location: "外滩", Description: "欣赏黄浦江两岸风光", Cost: 0},
				{Time: "11:00", Activity: "东方明珠", Location: "陆家嘴", Description: "登塔俯瞰上海全景", Cost: 160},
				{Time: "14:00", Activity: "南京路", Location: "南京路步行街", Description: "购物和品尝美食", Cost: 200},
				{Time: "19:00", Activity: "新天地", Location: "新天地", Description: "体验上海夜生活", Cost: 300},
			},
			"杭州": {
				{Time: "08:00", Activity: "西湖", Location: "西湖", Description: "漫步苏堤，欣赏西湖美景", Cost: 0},
				{Time: "10:30", Activity: "雷峰塔", Location: "雷峰塔", Description: "登塔俯瞰西湖全景", Cost: 40},
				{Time: "14:00", Activity: "灵隐寺", Location: "灵隐寺", Description: "参拜古刹，感受佛教文化", Cost: 45},
				{Time: "16:30", Activity: "河坊街", Location: "河坊街", Description: "体验杭州传统文化", Cost: 100},
			},
		},
		DefaultTemplate: []TemplateActivity{
			{Time: "09:00", Activity: "早餐", Location: "酒店餐厅", Description: "享用酒店早餐", Cost: 50},
			{Time: "10:00", Activity: "景点游览", Location: "主要景点", Description: "参观当地著名景点", Cost: 200},
			{Time: "12:00", Activity: "午餐", Location: "当地餐厅", Description: "品尝当地美食", Cost: 150},
			{Time: "14:00", Activity: "自由活动", Location: "市区", Description: "自由购物或休息", Cost: 100},
			{Time: "18:00", Activity: "晚餐", Location: "特色餐厅", Description: "享用晚餐", Cost: 200},
		},
		BaselineRecommendations: []string{
			"建议提前预订酒店和交通",
			"注意当地天气情况，准备合适的衣物",
			"了解当地文化和习俗",
			"准备必要的旅行证件",
		},
		DestinationTips: map[string][]string{
			"北京": {
				"建议购买北京一卡通，方便乘坐公共交通",
				"故宫需要提前预约，建议网上购票",
				"注意北京的空气质量，准备口罩",
			},
			"上海": {
				"建议购买上海交通卡",
				"外滩夜景很美，建议晚上前往",
				"注意上海的交通拥堵，合理安排时间",
			},
			"杭州": {
				"西湖景区很大，建议租借自行车",
				"春季是杭州最美的时候",
				"注意保护环境，不要乱扔垃圾",
			},
		},
	}
}
