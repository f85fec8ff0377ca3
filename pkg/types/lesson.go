package types

// LessonOptions is the number of answer options a quiz carries.
const LessonOptions = 3

// Quiz rewards for a correct answer.
const (
	QuizKnowledgePoints = 1
	QuizCoins           = 50
	QuizXP              = 15
)

// LessonResult is the outcome of answering a quiz.
type LessonResult string

// Lesson results.
const (
	LessonSuccess LessonResult = "success"
	LessonFailure LessonResult = "failure"
)

// Lesson is a single multiple-choice quiz question with a short concept
// explanation.
type Lesson struct {
	Concept      string   `json:"concept" yaml:"concept"`
	Question     string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correctIndex" yaml:"correct_index"`
}

// Validate checks that the lesson has a question, exactly LessonOptions
// options and a correct index among them.
func (l Lesson) Validate() error {
	if l.Question == "" || len(l.Options) != LessonOptions {
		return ErrInvalidLesson
	}
	if l.CorrectIndex < 0 || l.CorrectIndex >= len(l.Options) {
		return ErrInvalidLesson
	}
	return nil
}

// IsCorrect reports whether index is the correct answer.
func (l Lesson) IsCorrect(index int) bool {
	return index == l.CorrectIndex
}

// StoryChoice is one option of a lesson's opening story.
type StoryChoice struct {
	ID          string `json:"id" yaml:"id"`
	Text        string `json:"text" yaml:"text"`
	IsCorrect   bool   `json:"isCorrect" yaml:"is_correct"`
	Feedback    string `json:"feedback" yaml:"feedback"`
	Consequence string `json:"consequence,omitempty" yaml:"consequence,omitempty"`
}

// StoryHook opens an interactive lesson with a dilemma.
type StoryHook struct {
	Title     string        `json:"title" yaml:"title"`
	Scenario  string        `json:"scenario" yaml:"scenario"`
	Character string        `json:"character" yaml:"character"`
	Question  string        `json:"question" yaml:"question"`
	Choices   []StoryChoice `json:"choices" yaml:"choices"`
}

// Explanation names and defines the lesson's concept.
type Explanation struct {
	ConceptName      string `json:"conceptName" yaml:"concept_name"`
	Definition       string `json:"definition" yaml:"definition"`
	RealWorldExample string `json:"realWorldExample" yaml:"real_world_example"`
}

// PracticeScenario is an unscored practice question.
type PracticeScenario struct {
	Situation    string   `json:"situation" yaml:"situation"`
	Question     string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correctIndex" yaml:"correct_index"`
	Explanation  string   `json:"explanation" yaml:"explanation"`
}

// Quiz is the scored final question of an interactive lesson.
type Quiz struct {
	Question     string   `json:"question" yaml:"question"`
	Options      []string `json:"options" yaml:"options"`
	CorrectIndex int      `json:"correctIndex" yaml:"correct_index"`
	Reward       string   `json:"reward" yaml:"reward"`
}

// InteractiveLesson is a catalog lesson, gated by knowledge points.
type InteractiveLesson struct {
	ID                      string             `json:"id" yaml:"id"`
	Title                   string             `json:"title" yaml:"title"`
	Category                string             `json:"category" yaml:"category"`
	Difficulty              string             `json:"difficulty" yaml:"difficulty"`
	RequiredKnowledgePoints int                `json:"requiredKnowledgePoints" yaml:"required_knowledge_points"`
	Hook                    StoryHook          `json:"hook" yaml:"hook"`
	Explain                 Explanation        `json:"explain" yaml:"explain"`
	Practice                []PracticeScenario `json:"practice" yaml:"practice"`
	Quiz                    Quiz               `json:"quiz" yaml:"quiz"`
}

// Unlocked reports whether a player with kp knowledge points may start it.
func (l InteractiveLesson) Unlocked(kp int) bool {
	return kp >= l.RequiredKnowledgePoints
}

// QuizLesson returns the scored quiz as a Lesson.
func (l InteractiveLesson) QuizLesson() Lesson {
	return Lesson{
		Concept:      l.Explain.ConceptName,
		Question:     l.Quiz.Question,
		Options:      append([]string(nil), l.Quiz.Options...),
		CorrectIndex: l.Quiz.CorrectIndex,
	}
}
