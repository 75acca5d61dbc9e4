package utils

import (
	"fmt"
	"math/rand"

	"github.com/campus-dev/job-board/backend/internal/auth"
	"github.com/campus-dev/job-board/backend/internal/domain"
	"github.com/mozillazg/go-pinyin"
)

var commonSurnames = []string{
	"王", "李", "张", "刘", "陈", "杨", "赵", "黄", "周", "吴",
	"徐", "孙", "胡", "朱", "高", "林", "何", "郭", "马", "罗",
}
var commonNameCharacters = []string{
	"伟", "强", "芳", "敏", "静", "丽", "刚", "杰", "娟", "勇",
	"艳", "涛", "明", "军", "磊", "洋", "霞", "飞", "玲", "超",
	"华", "平", "辉", "梅", "鑫", "龙", "鹏", "玉", "斌", "庆",
	"建", "丹", "彬", "凤", "旭", "宁", "乐", "成", "欣",
}

func GenerateRandomChineseName() string {
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	nameLength := rand.Intn(2) + 1
	name := ""

	for i := 0; i < nameLength; i++ {
		name += commonNameCharacters[rand.Intn(len(commonNameCharacters))]
	}
	return surname + name
}

var digits = "0123456789"

// GenerateUsernameFromChineseName abbreviates each syllable's pinyin and appends
// a few digits, e.g. 王小明 -> wxiaom42.
func GenerateUsernameFromChineseName(chineseName string) string {
	pinyinArray := pinyin.LazyConvert(chineseName, nil)
	username := ""

	for _, syllable := range pinyinArray {
		length := rand.Intn(len(syllable)) + 1
		username += syllable[:length]
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(hasher *auth.PasswordHasher, password string, emailDomainName string) (*domain.User, error) {
	realName := GenerateRandomChineseName()
	username := GenerateUsernameFromChineseName(realName)
	passwordHash, err := hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: passwordHash,
		RealName:     realName,
		Email:        username + "@" + emailDomainName,
		IsTeacher:    rand.Intn(4) == 0,
	}

	return user, nil
}

var jobTitles = []string{
	"Teaching assistant", "Lab assistant", "Library aide", "Research assistant",
	"Campus tour guide", "IT help desk", "Grader", "Peer tutor",
}

var jobTypeTags = []string{"part-time", "full-time", "internship", "volunteer"}

var industryTags = []string{"education", "research", "technology", "administration", "healthcare"}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

func GenerateRandomID(letterLength int, digitLength int) string {
	randomID := make([]rune, letterLength+digitLength)
	for i := range randomID {
		if i < letterLength {
			randomID[i] = letters[rand.Intn(len(letters))]
		} else {
			randomID[i] = rune(digits[rand.Intn(len(digits))])
		}
	}
	return string(randomID)
}

func GenerateRandomJobPosting(ownerID int64) *domain.JobPosting {
	title := jobTitles[rand.Intn(len(jobTitles))]
	return &domain.JobPosting{
		OwnerID:     ownerID,
		Title:       title,
		Description: fmt.Sprintf("%s wanted. Reference %s.", title, GenerateRandomID(4, 4)),
		SignupForm:  "https://forms.example.com/" + GenerateRandomID(8, 0),
		JobTypeTag:  jobTypeTags[rand.Intn(len(jobTypeTags))],
		IndustryTag: industryTags[rand.Intn(len(industryTags))],
	}
}

var motivations = []string{
	"I want to gain hands-on experience.",
	"I enjoy helping other students.",
	"This matches my major.",
	"I am curious about the field.",
}

func GenerateRandomApplication(jobID, applicantID int64) *domain.JobApplication {
	return &domain.JobApplication{
		JobID:          jobID,
		ApplicantID:    applicantID,
		WhyInterested:  motivations[rand.Intn(len(motivations))],
		RelevantSkills: "Skill set " + GenerateRandomID(6, 0),
		HopeToGain:     "Experience and references",
	}
}
