package quiz

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Catalog holds the loaded course set, keyed by course ID.
type Catalog struct {
	courses map[string]*Course
	order   []string
}

// LoadCatalog reads course definition files (*.json) from dir. Files that
// fail to parse or define no questions are skipped with a warning. When dir
// is empty, missing, or yields no usable course, the built-in default set is
// returned so the service always has something to serve.
func LoadCatalog(dir string, logger zerolog.Logger) *Catalog {
	log := logger.With().Str("component", "course_catalog").Logger()

	c := &Catalog{courses: make(map[string]*Course)}
	if dir != "" {
		entries, err := os.ReadDir(dir)
		if err != nil {
			log.Warn().Err(err).Str("dir", dir).Msg("course directory unreadable, using defaults")
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			course, err := loadCourseFile(path)
			if err != nil {
				log.Warn().Err(err).Str("file", path).Msg("skipping course file")
				continue
			}
			c.add(course)
		}
	}

	if len(c.courses) == 0 {
		for _, course := range defaultCourses() {
			c.add(course)
		}
		log.Info().Int("courses", len(c.courses)).Msg("loaded built-in default courses")
	} else {
		log.Info().Int("courses", len(c.courses)).Str("dir", dir).Msg("loaded course catalog")
	}
	return c
}

func (c *Catalog) add(course *Course) {
	if _, exists := c.courses[course.ID]; !exists {
		c.order = append(c.order, course.ID)
	}
	c.courses[course.ID] = course
}

func loadCourseFile(path string) (*Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var course Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	if course.ID == "" {
		course.ID = strings.TrimSuffix(filepath.Base(path), ".json")
	}
	if course.Name == "" {
		course.Name = course.ID
	}
	if len(course.Questions) == 0 {
		return nil, fmt.Errorf("%s defines no questions", filepath.Base(path))
	}
	for i, q := range course.Questions {
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return nil, fmt.Errorf("%s question %d: correct index out of range", filepath.Base(path), i)
		}
	}
	return &course, nil
}

// Get looks up a course by ID.
func (c *Catalog) Get(id string) (*Course, bool) {
	course, ok := c.courses[id]
	return course, ok
}

// List returns catalog summaries in load order.
func (c *Catalog) List() []CourseSummary {
	out := make([]CourseSummary, 0, len(c.order))
	for _, id := range c.order {
		course := c.courses[id]
		out = append(out, CourseSummary{
			ID:            course.ID,
			Name:          course.Name,
			Description:   course.Description,
			Icon:          course.Icon,
			Color:         course.Color,
			QuestionCount: len(course.Questions),
		})
	}
	return out
}

func defaultCourses() []*Course {
	return []*Course{
		{
			ID:          "math",
			Name:        "Mathematics",
			Description: "Arithmetic and algebra fundamentals",
			Icon:        "📐",
			Color:       "#4a90d9",
			Questions: []Question{
				{Prompt: "What is 7 × 8?", Options: []string{"54", "56", "58", "64"}, Correct: 1},
				{Prompt: "What is 15% of 200?", Options: []string{"20", "25", "30", "35"}, Correct: 2},
				{Prompt: "Solve: 3x + 5 = 20", Options: []string{"x = 3", "x = 4", "x = 5", "x = 6"}, Correct: 2},
				{Prompt: "What is the square root of 144?", Options: []string{"10", "11", "12", "14"}, Correct: 2},
				{Prompt: "What is 2 to the power of 10?", Options: []string{"512", "1000", "1024", "2048"}, Correct: 2},
				{Prompt: "What is 91 ÷ 7?", Options: []string{"11", "12", "13", "14"}, Correct: 2},
				{Prompt: "What is the area of a 6×9 rectangle?", Options: []string{"15", "48", "54", "60"}, Correct: 2},
				{Prompt: "Which number is prime?", Options: []string{"51", "57", "59", "63"}, Correct: 2},
				{Prompt: "What is 0.25 as a fraction?", Options: []string{"1/3", "1/4", "1/5", "2/5"}, Correct: 1},
				{Prompt: "What is the next number: 2, 6, 18, 54, ...?", Options: []string{"108", "126", "162", "216"}, Correct: 2},
				{Prompt: "How many degrees in a triangle's angles?", Options: []string{"90", "180", "270", "360"}, Correct: 1},
				{Prompt: "What is 13 + 28?", Options: []string{"39", "40", "41", "42"}, Correct: 2},
			},
		},
		{
			ID:          "science",
			Name:        "Science",
			Description: "Physics, chemistry and biology basics",
			Icon:        "🔬",
			Color:       "#5cb85c",
			Questions: []Question{
				{Prompt: "What is the chemical symbol for gold?", Options: []string{"Go", "Gd", "Au", "Ag"}, Correct: 2},
				{Prompt: "How many planets are in the solar system?", Options: []string{"7", "8", "9", "10"}, Correct: 1},
				{Prompt: "What gas do plants absorb from the air?", Options: []string{"Oxygen", "Nitrogen", "Carbon dioxide", "Hydrogen"}, Correct: 2},
				{Prompt: "What is the speed of light, roughly?", Options: []string{"300 km/s", "3,000 km/s", "30,000 km/s", "300,000 km/s"}, Correct: 3},
				{Prompt: "Water boils at what temperature at sea level?", Options: []string{"90°C", "100°C", "110°C", "120°C"}, Correct: 1},
				{Prompt: "What organ pumps blood through the body?", Options: []string{"Lungs", "Liver", "Heart", "Kidneys"}, Correct: 2},
				{Prompt: "What force pulls objects toward Earth?", Options: []string{"Magnetism", "Friction", "Gravity", "Inertia"}, Correct: 2},
				{Prompt: "Which particle carries a negative charge?", Options: []string{"Proton", "Neutron", "Electron", "Photon"}, Correct: 2},
				{Prompt: "What is H2O commonly known as?", Options: []string{"Salt", "Water", "Hydrogen peroxide", "Ammonia"}, Correct: 1},
				{Prompt: "Which planet is known as the Red Planet?", Options: []string{"Venus", "Mars", "Jupiter", "Saturn"}, Correct: 1},
				{Prompt: "What do bees collect from flowers?", Options: []string{"Pollen and nectar", "Seeds", "Leaves", "Water"}, Correct: 0},
				{Prompt: "DNA is shaped like a what?", Options: []string{"Sphere", "Ladder", "Double helix", "Ring"}, Correct: 2},
			},
		},
		{
			ID:          "history",
			Name:        "History",
			Description: "World history highlights",
			Icon:        "🏛️",
			Color:       "#d9a441",
			Questions: []Question{
				{Prompt: "In which year did World War II end?", Options: []string{"1943", "1944", "1945", "1946"}, Correct: 2},
				{Prompt: "Who was the first president of the United States?", Options: []string{"Jefferson", "Lincoln", "Washington", "Adams"}, Correct: 2},
				{Prompt: "The Great Wall is located in which country?", Options: []string{"Japan", "China", "India", "Korea"}, Correct: 1},
				{Prompt: "Which empire built the Colosseum?", Options: []string{"Greek", "Ottoman", "Roman", "Persian"}, Correct: 2},
				{Prompt: "Who painted the Mona Lisa?", Options: []string{"Michelangelo", "Da Vinci", "Raphael", "Donatello"}, Correct: 1},
				{Prompt: "The pyramids of Giza are in which country?", Options: []string{"Mexico", "Peru", "Egypt", "Sudan"}, Correct: 2},
				{Prompt: "In which year did humans first land on the Moon?", Options: []string{"1965", "1967", "1969", "1971"}, Correct: 2},
				{Prompt: "Which civilization invented paper?", Options: []string{"Egyptian", "Chinese", "Mayan", "Babylonian"}, Correct: 1},
				{Prompt: "The Renaissance began in which country?", Options: []string{"France", "England", "Italy", "Spain"}, Correct: 2},
				{Prompt: "Who wrote the Declaration of Independence?", Options: []string{"Franklin", "Jefferson", "Hamilton", "Madison"}, Correct: 1},
				{Prompt: "The Berlin Wall fell in which year?", Options: []string{"1987", "1988", "1989", "1991"}, Correct: 2},
				{Prompt: "Which explorer reached the Americas in 1492?", Options: []string{"Magellan", "Columbus", "Vespucci", "Cabot"}, Correct: 1},
			},
		},
		{
			ID:          "language",
			Name:        "Language",
			Description: "Vocabulary and grammar",
			Icon:        "📚",
			Color:       "#9b59b6",
			Questions: []Question{
				{Prompt: "Which word is a synonym of 'happy'?", Options: []string{"Gloomy", "Joyful", "Angry", "Tired"}, Correct: 1},
				{Prompt: "What is the plural of 'child'?", Options: []string{"Childs", "Childes", "Children", "Childern"}, Correct: 2},
				{Prompt: "Which is a verb?", Options: []string{"Quickly", "Beautiful", "Run", "Table"}, Correct: 2},
				{Prompt: "What is the antonym of 'ancient'?", Options: []string{"Old", "Modern", "Historic", "Aged"}, Correct: 1},
				{Prompt: "Which sentence is correct?", Options: []string{"She don't know", "She doesn't knows", "She doesn't know", "She not know"}, Correct: 2},
				{Prompt: "What is the past tense of 'go'?", Options: []string{"Goed", "Gone", "Went", "Going"}, Correct: 2},
				{Prompt: "Which word is spelled correctly?", Options: []string{"Recieve", "Receive", "Receeve", "Receve"}, Correct: 1},
				{Prompt: "A group of words with a subject and verb is a what?", Options: []string{"Phrase", "Clause", "Syllable", "Prefix"}, Correct: 1},
				{Prompt: "Which is an adjective?", Options: []string{"Swim", "Bright", "Slowly", "Under"}, Correct: 1},
				{Prompt: "What punctuation ends a question?", Options: []string{"Period", "Comma", "Question mark", "Colon"}, Correct: 2},
				{Prompt: "Which word means 'very large'?", Options: []string{"Tiny", "Enormous", "Narrow", "Shallow"}, Correct: 1},
				{Prompt: "What is the comparative of 'good'?", Options: []string{"Gooder", "More good", "Better", "Best"}, Correct: 2},
			},
		},
	}
}
