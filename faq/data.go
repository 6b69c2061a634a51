package faq

// Entry is one curated question/answer pair.
type Entry struct {
	Question         string
	Answer           string
	Keywords         []string
	Category         string
	RelatedQuestions []string
}

// entries is the curated FAQ database, scored by keyword overlap at query
// time. Order matters: score ties resolve to the earlier entry.
var entries = []Entry{
	{
		Question: "SICT là gì?",
		Answer: `**SICT** (School of Information and Communications Technology) là **Trường Công nghệ thông tin và Truyền thông** thuộc Đại học Công nghiệp Hà Nội.

🏫 **Thông tin cơ bản:**
- Tên tiếng Việt: Trường Công nghệ thông tin và Truyền thông
- Trực thuộc: Đại học Công nghiệp Hà Nội (HaUI)
- Website: https://sict.haui.edu.vn`,
		Keywords: []string{"sict", "là gì", "viết tắt", "nghĩa là"},
		Category: "general",
		RelatedQuestions: []string{
			"SICT có những ngành đào tạo nào?",
			"Địa chỉ SICT ở đâu?",
			"Liên hệ SICT như thế nào?",
		},
	},
	{
		Question: "HaUI là trường gì?",
		Answer: `**HaUI** (Hanoi University of Industry) là **Đại học Công nghiệp Hà Nội**.

🏛️ **Thông tin cơ bản:**
- Thành lập: 1898 (hơn 125 năm lịch sử)
- Trực thuộc: Bộ Công Thương
- Quy mô: ~35.000 sinh viên, 60+ ngành đào tạo
- Website: https://www.haui.edu.vn

📍 **3 Cơ sở:**
- Cơ sở 1: Số 298 Cầu Diễn, Bắc Từ Liêm, Hà Nội
- Cơ sở 2: Phường Yên Viên, Gia Lâm, Hà Nội
- Cơ sở 3: Phủ Lý, Hà Nam`,
		Keywords: []string{"haui", "đại học công nghiệp", "hà nội", "trường gì"},
		Category: "general",
		RelatedQuestions: []string{
			"HaUI có bao nhiêu cơ sở?",
			"Các ngành đào tạo của HaUI?",
			"HaUI trực thuộc bộ nào?",
		},
	},
	{
		Question: "SICT có những ngành đào tạo nào?",
		Answer: `**SICT** đào tạo **6 ngành** ở bậc đại học:

1. 💻 **Công nghệ thông tin** (7480201)
2. 🔬 **Khoa học máy tính** (7480101)
3. 📊 **Hệ thống thông tin** (7480104)
4. 🔧 **Kỹ thuật phần mềm** (7480103)
5. 🔐 **An toàn thông tin** (7480202)
6. 🎨 **Công nghệ đa phương tiện** (7320113)

Tất cả các ngành đều cấp bằng **Cử nhân** sau 4 năm học.`,
		Keywords: []string{"ngành", "đào tạo", "chuyên ngành", "học gì", "có những"},
		Category: "programs",
		RelatedQuestions: []string{
			"Ngành CNTT học những gì?",
			"So sánh CNTT và KHMT?",
			"Điểm chuẩn các ngành?",
		},
	},
	{
		Question: "Ngành Công nghệ thông tin học gì?",
		Answer: `**Ngành Công nghệ thông tin (CNTT)** đào tạo kiến thức và kỹ năng về:

📚 **Kiến thức chuyên môn:**
- Lập trình (Python, Java, C++, Web)
- Cơ sở dữ liệu và quản trị hệ thống
- Mạng máy tính và an ninh mạng
- Phát triển phần mềm và ứng dụng

🎯 **Chuẩn đầu ra:**
- Thiết kế, triển khai giải pháp phần mềm
- Quản trị hệ thống và mạng
- Làm việc nhóm và giao tiếp hiệu quả

💼 **Cơ hội việc làm:**
- Lập trình viên, Developer
- Quản trị mạng, System Admin
- Phân tích hệ thống, BA
- Tester, QA Engineer`,
		Keywords: []string{"cntt", "công nghệ thông tin", "học gì", "ra làm gì", "môn học"},
		Category: "programs",
		RelatedQuestions: []string{
			"Điểm chuẩn ngành CNTT?",
			"Học phí ngành CNTT?",
			"CNTT khác KTPM như thế nào?",
		},
	},
	{
		Question: "Ngành An toàn thông tin học gì?",
		Answer: `**Ngành An toàn thông tin (ATTT)** đào tạo chuyên gia bảo mật:

🔐 **Kiến thức chuyên môn:**
- Mật mã học và bảo mật dữ liệu
- An ninh mạng và hệ thống
- Phát hiện và xử lý tấn công
- Kiểm thử xâm nhập (Penetration Testing)

🎯 **Chuẩn đầu ra:**
- Thiết kế giải pháp bảo mật
- Đánh giá và xử lý rủi ro
- Tuân thủ chính sách an toàn thông tin

💼 **Cơ hội việc làm:**
- Security Engineer
- Penetration Tester
- Security Analyst
- SOC Analyst`,
		Keywords: []string{"attt", "an toàn thông tin", "bảo mật", "security"},
		Category: "programs",
		RelatedQuestions: []string{
			"Điểm chuẩn ngành ATTT?",
			"ATTT có khó không?",
			"Việc làm ngành ATTT như thế nào?",
		},
	},
	{
		Question: "Điểm chuẩn các ngành là bao nhiêu?",
		Answer: `📊 **Điểm chuẩn** của SICT thay đổi hàng năm. Để biết điểm chuẩn mới nhất, bạn nên:

1. Truy cập website: https://sict.haui.edu.vn/vn/tuyen-sinh
2. Liên hệ Trung tâm Tuyển sinh: 024.3733.1699

💡 **Lưu ý:**
- Điểm chuẩn phụ thuộc vào tổ hợp xét tuyển
- Các ngành CNTT thường có điểm chuẩn cao hơn
- Có thể xét tuyển bằng học bạ hoặc điểm thi THPT`,
		Keywords: []string{"điểm chuẩn", "điểm xét tuyển", "bao nhiêu điểm"},
		Category: "admission",
		RelatedQuestions: []string{
			"Các phương thức xét tuyển?",
			"Tổ hợp xét tuyển ngành CNTT?",
			"Khi nào nộp hồ sơ?",
		},
	},
	{
		Question: "Học phí là bao nhiêu?",
		Answer: `💰 **Học phí** của HaUI được tính theo tín chỉ:

📋 **Thông tin chung:**
- Học phí tính theo tín chỉ đăng ký mỗi kỳ
- Mức học phí thay đổi theo năm học
- Có các chính sách miễn giảm cho sinh viên

📞 **Để biết mức học phí cụ thể:**
- Liên hệ Phòng Tài chính Kế toán
- Hotline: 024.3733.1699
- Website: https://www.haui.edu.vn

💡 **Chính sách hỗ trợ:**
- Học bổng khuyến khích học tập
- Miễn giảm học phí theo diện chính sách
- Vay vốn sinh viên qua Ngân hàng CSXH`,
		Keywords: []string{"học phí", "tiền học", "bao nhiêu tiền", "đóng tiền"},
		Category: "finance",
		RelatedQuestions: []string{
			"Có học bổng không?",
			"Chính sách miễn giảm học phí?",
			"Cách đóng học phí online?",
		},
	},
	{
		Question: "Liên hệ SICT như thế nào?",
		Answer: `📞 **Thông tin liên hệ Trường CNTT&TT (SICT):**

🏢 **Địa chỉ:**
Trường Công nghệ thông tin và Truyền thông
Đại học Công nghiệp Hà Nội
Số 298 Cầu Diễn, Bắc Từ Liêm, Hà Nội

📱 **Điện thoại:** 024.3733.1699
📧 **Email:** sict@haui.edu.vn
🌐 **Website:** https://sict.haui.edu.vn
📘 **Facebook:** /SICT.HaUI

⏰ **Giờ làm việc:**
- Thứ 2 - Thứ 6: 8:00 - 17:00
- Nghỉ trưa: 12:00 - 13:30`,
		Keywords: []string{"liên hệ", "số điện thoại", "email", "địa chỉ", "ở đâu"},
		Category: "contact",
		RelatedQuestions: []string{
			"Địa chỉ các cơ sở của HaUI?",
			"Phòng Đào tạo ở đâu?",
			"Hotline tuyển sinh?",
		},
	},
}

var greetingResponses = []string{
	"Xin chào! 👋 Tôi là trợ lý AI của SICT - HaUI. Bạn cần hỏi gì về trường không?",
	"Chào bạn! 🎓 Tôi có thể giúp gì cho bạn về SICT và HaUI?",
	"Hello! 👋 Mình là HaUI Assistant. Hãy hỏi mình bất cứ điều gì về trường nhé!",
}

var greetingSuggestions = []string{"SICT là gì?", "Các ngành đào tạo?", "Liên hệ SICT?"}

func defaultSuggestions() []string {
	return []string{
		"SICT có những ngành đào tạo nào?",
		"Điểm chuẩn các ngành?",
		"Liên hệ SICT như thế nào?",
	}
}
