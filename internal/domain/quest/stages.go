package quest

// Fixed per-stage tables, indexed 1..StagesTotal. Index 0 is unused.

var sceneTitles = [StagesTotal + 1]string{
	"",
	"Road into the Village",
	"Abandoned Market Square",
	"The Headman's House",
	"Forest Temple at the Village Edge",
	"Graveyard behind the Temple",
	"Ritual Landing by the Water",
	"Drowned Ancient City",
	"Hidden Cave beneath the City",
	"Escape Tunnel",
	"Mouth of the Valley",
}

var defaultMissions = [StagesTotal + 1]string{
	"",
	"Find a safe way into the village",
	"Trace the source of the wailing",
	"Search the headman's records for what happened here",
	"Ask the shrine for a sign",
	"Learn what the spirit wants and how to release it",
	"Gather what the rite requires",
	"Pass the seal guarding the ancient city",
	"Solve the cave's riddle to find the way out",
	"Slip past the dangers and reach the exit",
	"Leave the valley and close what was opened",
}

var choiceHints = [StagesTotal + 1][3]string{
	{},
	{"Check the signpost and the roadside", "Cut through the tall grass to the right", "Follow the road into the fog"},
	{"Search the old shopfronts", "Stop and listen to the wind", "Follow the footprints into the narrow alley"},
	{"Go through the document cabinet", "Knock and wait for an answer", "Ease open the back-room door"},
	{"Light incense and ask for passage", "Circle the ordination hall", "Study the idol for a clue"},
	{"Read the grave markers", "Lay down an offering", "Look for freshly disturbed earth"},
	{"Inspect the ritual platform", "Peer under the water", "Listen to the whispers along the bank"},
	{"Read the script on the wall", "Gauge the whirlpool", "Try placing the ritual pieces"},
	{"Feel along the walls for a hidden way", "Scan the stone ceiling", "Follow the rhythm of the dripping water"},
	{"Follow the cold draft", "Listen for the returning wind", "Hide when you hear footsteps"},
	{"Head straight for the valley mouth", "Look back for the shadow that follows", "Perform the closing rite"},
}

var fallbackChoices = [3]string{"Look around", "Stop and listen", "Move on carefully"}

func SceneTitle(stageIndex int) string {
	if stageIndex < 1 || stageIndex > StagesTotal {
		return ""
	}
	return sceneTitles[stageIndex]
}

func Mission(stageIndex int) string {
	if stageIndex < 1 || stageIndex > StagesTotal {
		return "Press on and unravel the mystery"
	}
	return defaultMissions[stageIndex]
}

func ChoiceHints(stageIndex int) [3]string {
	if stageIndex < 1 || stageIndex > StagesTotal {
		return fallbackChoices
	}
	return choiceHints[stageIndex]
}
