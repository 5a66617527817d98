package advisor

// Category 消费类别（封闭枚举）
type Category string

const (
	CategoryFood          Category = "Food"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryShopping      Category = "Shopping"
	CategoryBills         Category = "Bills"
	CategoryHealth        Category = "Health"
	CategoryEducation     Category = "Education"
	CategoryTravel        Category = "Travel"
	CategoryOther         Category = "Other"
)

// DefaultBenchmark 未知类别的基准占比
const DefaultBenchmark = 0.05

// categories 默认展示顺序
var categories = [...]Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategoryHealth,
	CategoryEducation,
	CategoryTravel,
	CategoryOther,
}

// benchmarks 各类别支出占收入的基准比例，合计为 1.0；进程启动后只读
var benchmarks = map[Category]float64{
	CategoryFood:          0.30,
	CategoryTransport:     0.15,
	CategoryEntertainment: 0.10,
	CategoryShopping:      0.10,
	CategoryBills:         0.20,
	CategoryHealth:        0.05,
	CategoryEducation:     0.05,
	CategoryTravel:        0.03,
	CategoryOther:         0.02,
}

// Categories 返回全部类别（按展示顺序）
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// Benchmarks 返回基准表的副本
func Benchmarks() map[Category]float64 {
	out := make(map[Category]float64, len(benchmarks))
	for k, v := range benchmarks {
		out[k] = v
	}
	return out
}

// Benchmark 查询类别基准，未知类别返回 DefaultBenchmark
func Benchmark(c Category) float64 {
	if v, ok := benchmarks[c]; ok {
		return v
	}
	return DefaultBenchmark
}

// Valid 是否为已知类别
func (c Category) Valid() bool {
	_, ok := benchmarks[c]
	return ok
}

// ParseCategory 校验并转换类别名称（区分大小写）
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}
