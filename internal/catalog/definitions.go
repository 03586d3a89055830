package catalog

// DefaultDefinitions contains the built-in achievement catalog: 10 entries
// per tier spread across all categories. Titles are stable keys; the rule
// evaluator's specific-predicate table is keyed by them, so renaming an
// entry here is a breaking change for persisted ledgers and unlock records.
var DefaultDefinitions = []Definition{
	// ====== EASY ======
	{Title: "Getting Started", Description: "Complete an assignment this week", Tier: TierEasy, Category: CategoryEngagement, Points: 10, Icon: "🎯", CalculationMethod: "Complete at least 1 assignment this week", RequiredFields: []string{"status"}, Rule: Rule{Kind: RuleCountThreshold, Value: 1}},
	{Title: "Steady Progress", Description: "Complete three assignments this week", Tier: TierEasy, Category: CategoryThreshold, Points: 15, Icon: "📈", CalculationMethod: "Complete at least 3 assignments this week", RequiredFields: []string{"status"}, Rule: Rule{Kind: RuleCountThreshold, Value: 3}},
	{Title: "On Time", Description: "Turn something in before the deadline", Tier: TierEasy, Category: CategoryTiming, Points: 10, Icon: "⏰", CalculationMethod: "Submit at least 1 assignment before its due date", RequiredFields: []string{"submittedAt", "dueAt"}},
	{Title: "Course Explorer", Description: "Work across more than one course", Tier: TierEasy, Category: CategoryVariety, Points: 10, Icon: "🧭", CalculationMethod: "Complete activities in at least 2 different courses", RequiredFields: []string{"status", "courseId"}, Rule: Rule{Kind: RuleCourseCount, Value: 2}},
	{Title: "Mixed Portfolio", Description: "Complete more than one kind of work", Tier: TierEasy, Category: CategoryVariety, Points: 10, Icon: "🎨", CalculationMethod: "Complete at least 2 different types of activities", RequiredFields: []string{"status", "type"}, Rule: Rule{Kind: RuleTypeVariety, Value: 2}},
	{Title: "Passing Week", Description: "Keep your weekly average at a passing grade", Tier: TierEasy, Category: CategoryPerformance, Points: 15, Icon: "✅", CalculationMethod: "Achieve an average grade of at least 70%", RequiredFields: []string{"score", "possiblePoints"}, Rule: Rule{Kind: RuleGradeThreshold, Value: 70}},
	{Title: "Back On Track", Description: "Do a little better than last week", Tier: TierEasy, Category: CategoryImprovement, Points: 15, Icon: "🔄", CalculationMethod: "Improve your average grade by at least 1 point over last week", RequiredFields: []string{"score", "possiblePoints"}, Rule: Rule{Kind: RuleGradeImprovement, Value: 1}},
	{Title: "Half Way There", Description: "Finish half of the week's assignments", Tier: TierEasy, Category: CategoryThreshold, Points: 15, Icon: "🌓", CalculationMethod: "Complete at least 50% of assignments due this week", RequiredFields: []string{"status"}, Rule: Rule{Kind: RuleCompletionPercent, Value: 50}},
	{Title: "Weekend Scholar", Description: "Keep the momentum going through the weekend", Tier: TierEasy, Category: CategoryEngagement, Points: 10, Icon: "📚", CalculationMethod: "Submit at least 1 assignment on a Saturday or Sunday", RequiredFields: []string{"submittedAt"}},
	{Title: "Two Week Rhythm", Description: "Show up two weeks in a row", Tier: TierEasy, Category: CategoryStreak, Points: 15, Icon: "🥁", CalculationMethod: "Complete assignments in 2 consecutive weeks", RequiredFields: []string{"status"}, Rule: Rule{Kind: RuleConsecutiveWeeks, Value: 2}},

	// ====== MEDIUM ======
	{Title: "Excellence Week", Description: "Average an A across this week's graded work", Tier: TierMedium, Category: CategoryPerformance, Points: 25, Icon: "🌟", CalculationMethod: "Achieve an average grade of at least 90%", RequiredFields: []string{"score", "possiblePoints"}, Rule: Rule{Kind: RuleGradeThreshold, Value: 90}},
	{Title: "High Completion", Description: "Finish nearly everything due this week", Tier: TierMedium, Category: CategoryThreshold, Points: 25, Icon: "🏁", CalculationMethod: "Complete at least 90% of assignments due this week", RequiredFields: []string{"status"}, Rule: Rule{Kind: RuleCompletionPercent, Value: 90}},
	{Title: "Early Bird", Description: "Make submitting early a habit", Tier: TierMedium, Category: CategoryTiming, Points: 25, Icon: "🐦", CalculationMethod: "Submit at least 80% of assignments 24 hours before their due date", RequiredFields: []string{"submittedAt", "dueAt"}},
	{Title: "Multi-Course Master", Description: "Stay on top of three courses at once", Tier: TierMedium, Category: CategoryVariety, Points: 25, Icon: "🎓", CalculationMethod: "Complete activities in at least 3 different courses", RequiredFields: []string{"status", "courseId"}, Rule: Rule{Kind: RuleCourseCount, Value: 3}},
	{Title: "Grade Climber", Description: "Make a real jump over last week's average", Tier: TierMedium, Category: CategoryImprovement, Points: 30, Icon: "🧗", CalculationMethod: "Improve your average grade by at least 10 points over last week", RequiredFields: []string{"score", "possiblePoints"}, Rule: Rule{Kind: RuleGradeImprovement, Value: 10}},
	{Title: "Busy Bee", Description: "Get through a full plate of assignments", Tier: TierMedium, Category: CategoryEngagement, Points: 25, Icon: "🐝", CalculationMethod: "Complete at least 5 assignments this week", RequiredFields: []string{"status"}, Rule: Rule{Kind: RuleCountThreshold, Value: 5}},
	{Title: "Point Collector", Description: "Rack up points from graded work", Tier: TierMedium, Category: CategoryThreshold, Points: 25, Icon: "💰", CalculationMethod: "Earn at least 100 points from scored work this week", RequiredFields: []string{"score"}, Rule: Rule{Kind: RuleCountThreshold, Value: 100, Unit: "points"}},
	{Title: "Exam Ace", Description: "Nail an exam this week", Tier: TierMedium, Category: CategoryPerformance, Points: 30, Icon: "📝", CalculationMethod: "Score at least 90% on an exam this week", RequiredFields: []string{"type", "score", "possiblePoints"}},
	{Title: "Project Pioneer", Description: "Ship a project", Tier: TierMedium, Category: CategoryEngagement, Points: 25, Icon: "🚀", CalculationMethod: "Complete at least 1 project this week", RequiredFields: []string{"type", "status"}},
	{Title: "Consistency Counts", Description: "Hold a steady completion rate week over week", Tier: TierMedium, Category: CategoryStreak, Points: 30, Icon: "📆", CalculationMethod: "Complete at least 70% of assignments in 2 consecutive weeks", RequiredFields: []string{"status"}},

	// ====== HARD ======
	{Title: "Perfect Week", Description: "A flawless run of graded work", Tier: TierHard, Category: CategoryPerformance, Points: 50, Icon: "💯", CalculationMethod: "Achieve an average grade of exactly 100%", RequiredFields: []string{"score", "possiblePoints"}},
	{Title: "A+ Week", Description: "Average an A+ across this week's graded work", Tier: TierHard, Category: CategoryPerformance, Points: 40, Icon: "🏆", CalculationMethod: "Achieve an average grade of at least 95%", RequiredFields: []string{"score", "possiblePoints"}, Rule: Rule{Kind: RuleGradeThreshold, Value: 95}},
	{Title: "Perfect Completion", Description: "Finish every single thing due this week", Tier: TierHard, Category: CategoryThreshold, Points: 40, Icon: "✨", CalculationMethod: "Complete 100% of assignments due this week", RequiredFields: []string{"status"}, Rule: Rule{Kind: RuleCompletionPercent, Value: 100}},
	{Title: "Ahead of Schedule", Description: "Everything in two days early", Tier: TierHard, Category: CategoryTiming, Points: 40, Icon: "🚄", CalculationMethod: "Submit every assignment at least 48 hours before its due date", RequiredFields: []string{"submittedAt", "dueAt"}},
	{Title: "Renaissance Scholar", Description: "Breadth across every kind of work", Tier: TierHard, Category: CategoryVariety, Points: 40, Icon: "🎭", CalculationMethod: "Complete at least 4 different types of activities", RequiredFields: []string{"status", "type"}, Rule: Rule{Kind: RuleTypeVariety, Value: 4}},
	{Title: "Quantum Leap", Description: "A dramatic improvement over last week", Tier: TierHard, Category: CategoryImprovement, Points: 50, Icon: "⚡", CalculationMethod: "Improve your average grade by at least 20 points over last week", RequiredFields: []string{"score", "possiblePoints"}, Rule: Rule{Kind: RuleGradeImprovement, Value: 20}},
	{Title: "Momentum Master", Description: "Two strong weeks back to back", Tier: TierHard, Category: CategoryStreak, Points: 50, Icon: "🔥", CalculationMethod: "Maintain a completion rate of at least 80% for 2 consecutive weeks", RequiredFields: []string{"status"}},
	{Title: "Century Club", Description: "A double century of points in one week", Tier: TierHard, Category: CategoryThreshold, Points: 40, Icon: "🏅", CalculationMethod: "Earn at least 200 points from scored work this week", RequiredFields: []string{"score"}, Rule: Rule{Kind: RuleCountThreshold, Value: 200, Unit: "points"}},
	{Title: "Power Week", Description: "An exceptional volume of finished work", Tier: TierHard, Category: CategoryEngagement, Points: 40, Icon: "💪", CalculationMethod: "Complete at least 10 assignments this week", RequiredFields: []string{"status"}, Rule: Rule{Kind: RuleCountThreshold, Value: 10}},
	{Title: "Full Spectrum", Description: "Every course touched, everything on time", Tier: TierHard, Category: CategoryVariety, Points: 50, Icon: "🌈", CalculationMethod: "Complete activities in at least 4 different courses", RequiredFields: []string{"status", "courseId"}, Rule: Rule{Kind: RuleCourseCount, Value: 4}},
}

// Default builds the built-in catalog. The built-in definitions are validated
// at startup like any external catalog; a panic here means the table above
// was edited into an invalid state.
func Default() *Catalog {
	c, err := New(DefaultDefinitions)
	if err != nil {
		panic(err)
	}
	return c
}
