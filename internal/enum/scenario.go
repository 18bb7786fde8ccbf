package enum

type Scenario string

const (
	ScenarioEngagement      Scenario = "engagement"
	ScenarioAmpEngagement   Scenario = "amp_engagement"
	ScenarioInbandBounce    Scenario = "inband_bounce"
	ScenarioOutOfBandBounce Scenario = "outofband_bounce"
	ScenarioSpamComplaint   Scenario = "spam_complaint"
	ScenarioDelay           Scenario = "delay"
	ScenarioRejection       Scenario = "rejection"
	ScenarioUnsubscribe     Scenario = "unsubscribe"
)

func (s Scenario) String() string {
	return string(s)
}

var AllScenarios = []Scenario{
	ScenarioEngagement,
	ScenarioAmpEngagement,
	ScenarioInbandBounce,
	ScenarioOutOfBandBounce,
	ScenarioSpamComplaint,
	ScenarioDelay,
	ScenarioRejection,
	ScenarioUnsubscribe,
}

func GetScenario(s string) (Scenario, bool) {
	for _, sc := range AllScenarios {
		if string(sc) == s {
			return sc, true
		}
	}
	return "", false
}

// BounceClass is the vendor numeric bounce classification, carried as a string on the wire.
type BounceClass string

const (
	BounceClassInvalidRecipient BounceClass = "10"
	BounceClassMailboxFull      BounceClass = "22"
	BounceClassAdminFailure     BounceClass = "25"
	BounceClassGenericBounce    BounceClass = "30"
	BounceClassMailBlock        BounceClass = "50"
	BounceClassSpamBlock        BounceClass = "51"
	BounceClassTransientFailure BounceClass = "70"
)

func (b BounceClass) String() string {
	return string(b)
}
