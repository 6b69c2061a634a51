package textnorm

// Vocabulary tables for Vietnamese query normalization, tuned to the
// SICT/HaUI education domain.

// abbreviations maps lowercase shorthand to its expansion. Matched on word
// boundaries, longest key first.
var abbreviations = map[string]string{
	// education
	"sv":   "sinh viên",
	"gv":   "giảng viên",
	"ths":  "thạc sĩ",
	"ts":   "tiến sĩ",
	"pgs":  "phó giáo sư",
	"gs":   "giáo sư",
	"ks":   "kỹ sư",
	"đh":   "đại học",
	"cđ":   "cao đẳng",
	"hv":   "học viên",
	"hvch": "học viên cao học",
	"ncs":  "nghiên cứu sinh",
	"đatn": "đồ án tốt nghiệp",
	"kltn": "khóa luận tốt nghiệp",
	"đamh": "đồ án môn học",
	"btl":  "bài tập lớn",
	"gpa":  "điểm trung bình tích lũy",

	// programmes
	"cntt":  "công nghệ thông tin",
	"khmt":  "khoa học máy tính",
	"ktpm":  "kỹ thuật phần mềm",
	"httt":  "hệ thống thông tin",
	"attt":  "an toàn thông tin",
	"ttnt":  "trí tuệ nhân tạo",
	"ai":    "trí tuệ nhân tạo",
	"ml":    "học máy",
	"dl":    "học sâu",
	"iot":   "internet vạn vật",
	"cnđpt": "công nghệ đa phương tiện",
	"đtvt":  "điện tử viễn thông",
	"cơđt":  "cơ điện tử",
	"ktđk":  "kỹ thuật điều khiển",

	// institutions
	"haui":   "đại học công nghiệp hà nội",
	"sict":   "trường công nghệ thông tin và truyền thông",
	"dhcnhn": "đại học công nghiệp hà nội",
	"bct":    "bộ công thương",

	// administration
	"hp":   "học phần",
	"tc":   "tín chỉ",
	"hk":   "học kỳ",
	"nh":   "năm học",
	"ctđt": "chương trình đào tạo",
	"đcv":  "điểm chuẩn vào",
	"xl":   "xét lại",
	"hp2":  "học phần 2",
	"tkb":  "thời khóa biểu",
	"lhp":  "lịch học phần",
	"đkhp": "đăng ký học phần",
	"clb":  "câu lạc bộ",
	"đtn":  "đoàn thanh niên",
	"hsv":  "hội sinh viên",

	// everyday shorthand
	"nt":    "nhắn tin",
	"sđt":   "số điện thoại",
	"hcm":   "hồ chí minh",
	"hn":    "hà nội",
	"tphcm": "thành phố hồ chí minh",
	"vn":    "việt nam",
	"tn":    "thứ năm",
	"t2":    "thứ hai",
	"t3":    "thứ ba",
	"t4":    "thứ tư",
	"t5":    "thứ năm",
	"t6":    "thứ sáu",
	"t7":    "thứ bảy",
	"cn":    "chủ nhật",

	// texting shorthand
	"dc":  "được",
	"đc":  "được",
	"ko":  "không",
	"k":   "không",
	"hok": "học",
	"thi": "thi",
	"bt":  "bình thường",
	"ntn": "như thế nào",
	"cx":  "cũng",
	"vs":  "với",
	"j":   "gì",
	"z":   "vậy",
	"r":   "rồi",
	"lm":  "làm",
	"ns":  "nói",
	"đag": "đang",
	"mk":  "mình",
	"bn":  "bạn",
	"trc": "trước",
	"sau": "sau",
}

type typoFix struct {
	Typo, Fix string
}

// commonTypos is applied in order as plain substring replacement over the
// lowercased text.
var commonTypos = []typoFix{
	// missing diacritics
	{"công nghe", "công nghệ"},
	{"thông tinh", "thông tin"},
	{"đai học", "đại học"},
	{"nganh", "ngành"},
	{"truong", "trường"},
	{"sinh vien", "sinh viên"},
	{"giang vien", "giảng viên"},
	{"hoc phi", "học phí"},
	{"tuyen sinh", "tuyển sinh"},
	{"dao tao", "đào tạo"},
	{"chuong trinh", "chương trình"},
	{"ky thuat", "kỹ thuật"},
	{"phan mem", "phần mềm"},
	{"he thong", "hệ thống"},
	{"an toan", "an toàn"},
	{"may tinh", "máy tính"},
	{"khoa hoc", "khoa học"},
	{"cong nghiep", "công nghiệp"},
	{"ha noi", "hà nội"},

	// consonant slips
	{"công ngệ", "công nghệ"},
	{"thôg tin", "thông tin"},
	{"sihn viên", "sinh viên"},
	{"giản viên", "giảng viên"},

	// vowel slips
	{"cuông nghệ", "công nghệ"},
	{"thung tin", "thông tin"},
	{"đoà tạo", "đào tạo"},

	// joined words
	{"côngnghệ", "công nghệ"},
	{"thôngtin", "thông tin"},
	{"sinhviên", "sinh viên"},
	{"đạihọc", "đại học"},
	{"họcphí", "học phí"},

	// backup for queries that skip abbreviation expansion
	{"cntt", "công nghệ thông tin"},
}

// slangWords maps youth/internet slang to standard Vietnamese. Matched on
// word boundaries; keys may span multiple words.
var slangWords = map[string]string{
	"ôkê":      "được",
	"ok":       "được",
	"okie":     "được",
	"okela":    "được",
	"oke":      "được",
	"noob":     "người mới",
	"pro":      "chuyên nghiệp",
	"fix":      "sửa",
	"bug":      "lỗi",
	"deadline": "hạn nộp",
	"submit":   "nộp bài",
	"review":   "đánh giá",
	"pass":     "đỗ",
	"fail":     "trượt",
	"gpa":      "điểm trung bình",
	"gap year": "năm nghỉ",
	"intern":   "thực tập",
	"offer":    "đề nghị làm việc",
}
