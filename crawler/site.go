package crawler

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type CategoryType string

const (
	// CategoryPaginated categories are crawled page by page with date filtering.
	CategoryPaginated CategoryType = "paginated"
	// CategoryStatic categories are a fixed set of pages re-checked by content hash.
	CategoryStatic CategoryType = "static"
)

// CategoryConfig describes one crawlable section of the site. The table is
// read-only at runtime; it defines the crawl topology.
type CategoryConfig struct {
	Name         string       `yaml:"name"`
	Path         string       `yaml:"path"`
	Type         CategoryType `yaml:"type"`
	DateRequired bool         `yaml:"date_required"`
	Priority     int          `yaml:"priority"`
	SubPaths     []string     `yaml:"sub_paths"`
	Description  string       `yaml:"description"`
}

// DefaultSiteStructure returns the built-in sict.haui.edu.vn site map.
// Categories do not overlap in URL space; the crawler relies on that when
// merging per-category results.
func DefaultSiteStructure() map[string]CategoryConfig {
	return map[string]CategoryConfig{
		// Dynamic content: paginated, date-filtered.
		"tin-tuc": {
			Name:         "Tin tức",
			Path:         "/vn/tin-tuc",
			Type:         CategoryPaginated,
			DateRequired: true,
			Priority:     1,
			Description:  "Tin tức sự kiện, hoạt động, thành tích",
		},
		"thong-bao": {
			Name:         "Thông báo",
			Path:         "/vn/thong-bao",
			Type:         CategoryPaginated,
			DateRequired: true,
			Priority:     1,
			Description:  "Thông báo chính thức từ trường",
		},
		"tuyen-dung": {
			Name:         "Tuyển dụng",
			Path:         "/vn/tuyen-dung",
			Type:         CategoryPaginated,
			DateRequired: true,
			Priority:     2,
			Description:  "Thông tin tuyển dụng, thực tập",
		},
		"tuyen-sinh": {
			Name:         "Tuyển sinh",
			Path:         "/vn/tuyen-sinh",
			Type:         CategoryPaginated,
			DateRequired: true,
			Priority:     2,
			SubPaths: []string{
				"/vn/tuyen-sinh-dai-hoc",
				"/vn/tuyen-sinh-sau-dai-hoc",
			},
			Description: "Thông tin tuyển sinh đại học, sau đại học",
		},
		"khoa-hoc-cong-nghe": {
			Name:         "Khoa học công nghệ",
			Path:         "/vn/khoa-hoc-cong-nghe",
			Type:         CategoryPaginated,
			DateRequired: true,
			Priority:     3,
			SubPaths: []string{
				"/vn/cong-trinh-cong-bo",
				"/vn/de-tai-du-an",
				"/vn/sinh-vien-nckh",
				"/vn/tin-khcn",
			},
			Description: "Nghiên cứu khoa học, đề tài, dự án",
		},
		"dao-tao-ngan-han": {
			Name:         "Đào tạo ngắn hạn",
			Path:         "/vn/dao-tao-ngan-han",
			Type:         CategoryPaginated,
			DateRequired: true,
			Priority:     3,
			Description:  "Các khóa đào tạo ngắn hạn",
		},

		// Static content: always crawled, no date filter.
		"gioi-thieu": {
			Name:     "Giới thiệu",
			Path:     "/vn/gioi-thieu",
			Type:     CategoryStatic,
			Priority: 4,
			SubPaths: []string{
				"/vn/thong-tin-chung",
				"/vn/co-cau-to-chuc",
				"/vn/chien-luoc-phat-trien",
				"/vn/can-bo-giang-vien",
				"/vn/co-so-vat-chat",
				"/vn/lien-he",
			},
			Description: "Thông tin giới thiệu trường",
		},
		"nganh-dao-tao": {
			Name:     "Ngành đào tạo",
			Path:     "/vn/dao-tao",
			Type:     CategoryStatic,
			Priority: 4,
			SubPaths: []string{
				"/vn/cong-nghe-thong-tin",
				"/vn/khoa-hoc-may-tinh",
				"/vn/ky-thuat-phan-mem",
				"/vn/he-thong-thong-tin",
				"/vn/an-toan-thong-tin",
				"/vn/cong-nghe-da-phuong-tien",
				"/vn/sau-dai-hoc",
				"/vn/he-thong-thong-tin-sdh",
			},
			Description: "Thông tin các ngành đào tạo",
		},
		"khoa-bo-mon": {
			Name:     "Khoa - Bộ môn",
			Path:     "/vn/khoa",
			Type:     CategoryStatic,
			Priority: 4,
			SubPaths: []string{
				"/vn/khoa-cong-nghe-thong-tin",
				"/vn/khoa-cong-nghe-phan-mem",
				"/vn/khoa-khoa-hoc-may-tinh",
				"/vn/khoa-mang-may-tinh-va-truyen-thong",
			},
			Description: "Thông tin các khoa, bộ môn",
		},
		"phong-trung-tam": {
			Name:     "Phòng - Trung tâm",
			Path:     "/vn/don-vi",
			Type:     CategoryStatic,
			Priority: 5,
			SubPaths: []string{
				"/vn/phong-tong-hop",
				"/vn/trung-tam-hop-tac-phat-trien",
				"/vn/trung-tam-nghien-cuu-va-ung-dung-tri-tue-nhan-tao",
			},
			Description: "Thông tin các phòng ban, trung tâm",
		},
		"quy-che": {
			Name:     "Quy chế - Biểu mẫu",
			Path:     "/vn/quy-che-bieu-mau",
			Type:     CategoryStatic,
			Priority: 5,
			SubPaths: []string{
				"/vn/ke-hoach",
				"/vn/tien-do",
			},
			Description: "Quy chế, biểu mẫu, kế hoạch đào tạo",
		},
	}
}

// LoadSiteStructure reads a category table from a YAML file. An empty path
// returns the built-in structure.
func LoadSiteStructure(path string) (map[string]CategoryConfig, error) {
	if path == "" {
		return DefaultSiteStructure(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site structure: %w", err)
	}
	site := make(map[string]CategoryConfig)
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("failed to parse site structure: %w", err)
	}
	for key, cat := range site {
		if cat.Type != CategoryPaginated && cat.Type != CategoryStatic {
			return nil, fmt.Errorf("category %q has unknown type %q", key, cat.Type)
		}
	}
	return site, nil
}
