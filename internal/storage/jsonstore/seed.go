package jsonstore

import (
	"time"

	"shangan/internal/auth"
	"shangan/internal/model"
)

// defaultJobs 首次初始化数据目录时写入的示例岗位
func defaultJobs() []*model.Job {
	now := time.Now().UTC()
	return []*model.Job{
		{
			ID:          auth.NewID(),
			Title:       "政策研究员",
			Company:     "城市治理研究院",
			City:        "上海",
			District:    "全市",
			Salary:      "10-14k",
			Tags:        []string{"政策分析", "写作能力"},
			PublishedAt: now,
			Link:        "https://example.com/policy",
			Status:      model.JobStatusOpen,
			Category:    "事业单位",
			Region:      "华东",
			Province:    "上海",
			Views:       84,
			ApplyLink:   "https://example.com/apply/policy",
			SourceLink:  "https://example.com/policy",
		},
		{
			ID:          auth.NewID(),
			Title:       "选调生岗位",
			Company:     "省级组织部",
			City:        "南京",
			District:    "全市",
			Salary:      "8-12k",
			Tags:        []string{"选调", "党建"},
			PublishedAt: now,
			Link:        "https://example.com/xd",
			Status:      model.JobStatusOpen,
			Category:    "选调生",
			Region:      "华东",
			Province:    "江苏",
			Views:       126,
			ApplyLink:   "https://example.com/apply/xd",
			SourceLink:  "https://example.com/xd",
		},
		{
			ID:          auth.NewID(),
			Title:       "人民医院临床岗",
			Company:     "市人民医院",
			City:        "武汉",
			District:    "全市",
			Salary:      "12-18k",
			Tags:        []string{"规培", "临床"},
			PublishedAt: now,
			Link:        "https://example.com/hospital",
			Status:      model.JobStatusOpen,
			Category:    "医疗",
			Region:      "华中",
			Province:    "湖北",
			Views:       96,
			ApplyLink:   "https://example.com/apply/hospital",
			SourceLink:  "https://example.com/hospital",
		},
		{
			ID:          auth.NewID(),
			Title:       "事业单位综合岗",
			Company:     "市公共服务中心",
			City:        "成都",
			District:    "全市",
			Salary:      "7-10k",
			Tags:        []string{"综合管理", "笔试"},
			PublishedAt: now,
			Link:        "https://example.com/public-service",
			Status:      model.JobStatusOpen,
			Category:    "事业单位",
			Region:      "西南",
			Province:    "四川",
			Views:       64,
			ApplyLink:   "https://example.com/apply/public-service",
			SourceLink:  "https://example.com/public-service",
		},
		{
			ID:          auth.NewID(),
			Title:       "中学教师编制",
			Company:     "市教育局",
			City:        "北京",
			District:    "全市",
			Salary:      "10-15k",
			Tags:        []string{"教师资格", "编制"},
			PublishedAt: now,
			Link:        "https://example.com/teacher",
			Status:      model.JobStatusOpen,
			Category:    "教师",
			Region:      "华北",
			Province:    "北京",
			Views:       178,
			ApplyLink:   "https://example.com/apply/teacher",
			SourceLink:  "https://example.com/teacher",
		},
		{
			ID:          auth.NewID(),
			Title:       "国企管培生",
			Company:     "能源集团",
			City:        "西安",
			District:    "全市",
			Salary:      "9-13k",
			Tags:        []string{"管培生", "国企"},
			PublishedAt: now,
			Link:        "https://example.com/soe",
			Status:      model.JobStatusOpen,
			Category:    "国企",
			Region:      "西北",
			Province:    "陕西",
			Views:       103,
			ApplyLink:   "https://example.com/apply/soe",
			SourceLink:  "https://example.com/soe",
		},
		{
			ID:          auth.NewID(),
			Title:       "银行客户经理",
			Company:     "城市商业银行",
			City:        "郑州",
			District:    "全市",
			Salary:      "8-12k",
			Tags:        []string{"金融", "客户运营"},
			PublishedAt: now,
			Link:        "https://example.com/bank",
			Status:      model.JobStatusOpen,
			Category:    "银行",
			Region:      "华中",
			Province:    "河南",
			Views:       74,
			ApplyLink:   "https://example.com/apply/bank",
			SourceLink:  "https://example.com/bank",
		},
		{
			ID:          auth.NewID(),
			Title:       "军队文职助理",
			Company:     "某部队机关",
			City:        "沈阳",
			District:    "全市",
			Salary:      "9-12k",
			Tags:        []string{"文职", "政审"},
			PublishedAt: now,
			Link:        "https://example.com/military",
			Status:      model.JobStatusOpen,
			Category:    "军队文职",
			Region:      "东北",
			Province:    "辽宁",
			Views:       52,
			ApplyLink:   "https://example.com/apply/military",
			SourceLink:  "https://example.com/military",
		},
	}
}
