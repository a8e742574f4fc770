package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"github.com/pkg/errors"
)

// Share codes compress a run's identity into a short token that players
// can read over the phone: a mode prefix, one of 512 words, and a two
// digit number. The mapping is lossy on purpose. Decoding yields a seed
// whose re-encoding reproduces the token exactly, so codes stay stable
// across share round trips even though most of the original seed bits
// are gone.

const (
	sharePrefixStandard = "TR"
	sharePrefixDeep     = "DP"

	shareWordBits = 9
	shareWordMask = (1 << shareWordBits) - 1
	shareNumSpan  = 100
)

var shareWords = [512]string{
	"amber", "apple", "arrow", "aspen", "atlas", "autumn", "badge", "badger",
	"bagel", "bamboo", "banjo", "barley", "basil", "beacon", "beaver", "bell",
	"berry", "birch", "bison", "blaze", "blossom", "bluff", "bolt", "bonfire",
	"boulder", "bourbon", "breeze", "brick", "bridge", "bronze", "brook", "buffalo",
	"bugle", "butte", "cabin", "cactus", "camel", "candle", "canoe", "canyon",
	"caramel", "carbon", "cedar", "chalk", "cherry", "chestnut", "chili", "chime",
	"chisel", "cider", "cinder", "citrus", "clay", "cliff", "clover", "cobalt",
	"cocoa", "comet", "compass", "copper", "coral", "cotton", "cougar", "coyote",
	"crane", "crater", "creek", "cricket", "crimson", "crow", "crystal", "cypress",
	"daisy", "dapple", "dawn", "delta", "denim", "desert", "dewdrop", "diesel",
	"dingo", "dome", "drift", "dune", "dusk", "eagle", "ebony", "echo",
	"eddy", "elder", "elk", "ember", "emerald", "falcon", "feather", "fennel",
	"fern", "ferry", "fiddle", "finch", "fjord", "flame", "flannel", "flare",
	"flint", "fog", "forge", "fossil", "fox", "freight", "frost", "galley",
	"garnet", "gazelle", "geyser", "ginger", "glacier", "glade", "goose", "gorge",
	"granite", "grape", "gravel", "grove", "gull", "gusto", "hail", "harbor",
	"hawk", "hazel", "heather", "hedge", "hemlock", "heron", "hickory", "hill",
	"hollow", "honey", "hoof", "horizon", "hornet", "husk", "ibis", "icicle",
	"indigo", "inlet", "iris", "iron", "island", "ivory", "ivy", "jackal",
	"jade", "jasper", "jetty", "juniper", "kayak", "kelp", "kestrel", "kiln",
	"kindle", "kiosk", "kite", "knoll", "lagoon", "lake", "lantern", "larch",
	"lark", "laurel", "lava", "lemon", "lentil", "lichen", "lilac", "lily",
	"lime", "linen", "lobster", "locust", "lodge", "loft", "lotus", "lumber",
	"lynx", "magma", "magnet", "mango", "maple", "marble", "marsh", "meadow",
	"mesa", "mesquite", "mica", "midge", "mill", "mineral", "mint", "mirage",
	"mist", "molasses", "monsoon", "moose", "moss", "moth", "mountain", "mulberry",
	"mule", "mustang", "myrtle", "nectar", "nettle", "north", "nugget", "nutmeg",
	"oak", "oasis", "ocean", "ocher", "olive", "onyx", "opal", "orange",
	"orchard", "orchid", "osprey", "otter", "owl", "oxbow", "oyster", "paddle",
	"pagoda", "palm", "pampas", "panther", "paprika", "parka", "parsley", "pasture",
	"peach", "pebble", "pecan", "pelican", "pepper", "perch", "pewter", "pheasant",
	"pickle", "pigeon", "pine", "pinon", "pistachio", "plank", "plateau", "plum",
	"pollen", "pond", "poplar", "poppy", "porch", "prairie", "primrose", "puddle",
	"pueblo", "puffin", "pumice", "pumpkin", "quail", "quarry", "quartz", "quill",
	"quince", "rabbit", "raccoon", "rain", "rapids", "raven", "redwood", "reed",
	"reef", "ridge", "rind", "river", "roan", "robin", "rooster", "rosemary",
	"rowan", "rubble", "ruby", "rudder", "rust", "rye", "saddle", "saffron",
	"sage", "salmon", "sand", "sapling", "sapphire", "sassafras", "satchel", "savanna",
	"sawdust", "scarlet", "schooner", "scone", "sedge", "sequoia", "shale", "shadow",
	"sheaf", "shell", "shingle", "shoal", "shore", "silo", "silver", "skiff",
	"skillet", "slate", "sleet", "smelt", "snipe", "snow", "sorrel", "spark",
	"sparrow", "spice", "spindle", "spruce", "spur", "squash", "squirrel", "starling",
	"steam", "steel", "steppe", "stone", "stork", "storm", "straw", "stream",
	"summit", "sunflower", "swallow", "swamp", "sycamore", "syrup", "taffy", "talon",
	"tamarack", "tangelo", "tansy", "tarragon", "teak", "teal", "tempest", "terrace",
	"thicket", "thistle", "thorn", "thrush", "thunder", "tide", "timber", "tinder",
	"toad", "topaz", "torch", "trail", "trout", "tulip", "tundra", "turnip",
	"turquoise", "turtle", "tusk", "twig", "umber", "upland", "valley", "vanilla",
	"vapor", "velvet", "verbena", "vessel", "vine", "violet", "vista", "vole",
	"wagon", "walnut", "walrus", "wasp", "water", "weasel", "wharf", "wheat",
	"whistle", "willow", "wind", "winter", "wolf", "wombat", "wren", "yarrow",
	"yucca", "zephyr", "zinc", "acorn", "adobe", "agate", "alder", "alfalfa",
	"almond", "aloe", "alpine", "anchor", "anise", "antler", "apricot", "aquifer",
	"arbor", "arch", "ash", "aster", "auburn", "aurora", "avocado", "axle",
	"azalea", "bark", "barn", "basalt", "bass", "bay", "bayou", "beach",
	"bean", "beet", "bellows", "belt", "bench", "birchbark", "biscuit", "bluebell",
	"boar", "bobcat", "bog", "bramble", "bran", "brandy", "brass", "brine",
	"bristle", "broom", "buck", "buckeye", "bud", "bulrush", "bunting", "burlap",
	"burro", "bushel", "cairn", "calico", "camphor", "capstan", "caravan", "carob",
	"cascade", "cattail", "cavern", "chamois", "channel", "chapel", "charcoal", "chicory",
	"chipmunk", "cobble", "cove", "cowbird", "crag", "cranberry", "crest", "curlew",
	"currant", "dell", "dogwood", "dory", "dovetail", "drake", "eel", "egret",
	"elmwood", "ermine", "estuary", "fawn", "flax", "foal", "foothill", "ford",
	"foxglove", "gale", "gannet", "garland", "ginkgo", "gnarl", "harvest", "hearth",
}

var shareWordIndex = func() map[string]int {
	m := make(map[string]int, len(shareWords))
	for i, w := range shareWords {
		m[w] = i
	}
	return m
}()

// EncodeShareCode renders a seed as a MODE-WORDNN token.
func EncodeShareCode(mode Mode, seed uint64) string {
	prefix := sharePrefixStandard
	if mode == ModeDeep {
		prefix = sharePrefixDeep
	}
	word := shareWords[seed&shareWordMask]
	num := (seed >> shareWordBits) % shareNumSpan
	return fmt.Sprintf("%s-%s%02d", prefix, strings.ToUpper(word), num)
}

// DecodeShareCode parses a share token back into a mode and a seed.
// The returned seed re-encodes to the exact same token. Unknown words
// come back with the closest known word as a suggestion.
func DecodeShareCode(token string) (Mode, uint64, error) {
	raw := strings.ToUpper(strings.TrimSpace(token))
	prefix, rest, ok := strings.Cut(raw, "-")
	if !ok {
		return "", 0, errors.Errorf("share code %q: missing mode prefix", token)
	}

	var mode Mode
	switch prefix {
	case sharePrefixStandard:
		mode = ModeStandard
	case sharePrefixDeep:
		mode = ModeDeep
	default:
		return "", 0, errors.Errorf("share code %q: unknown mode prefix %q", token, prefix)
	}

	cut := len(rest)
	for cut > 0 && unicode.IsDigit(rune(rest[cut-1])) {
		cut--
	}
	word := strings.ToLower(rest[:cut])
	digits := rest[cut:]
	if word == "" || digits == "" {
		return "", 0, errors.Errorf("share code %q: want WORD followed by two digits", token)
	}

	var num int
	if _, err := fmt.Sscanf(digits, "%d", &num); err != nil || num < 0 || num >= shareNumSpan {
		return "", 0, errors.Errorf("share code %q: bad number %q", token, digits)
	}

	idx, found := shareWordIndex[word]
	if !found {
		return "", 0, errors.Errorf("share code %q: unknown word %q (did you mean %q?)",
			token, strings.ToUpper(word), strings.ToUpper(nearestShareWord(word)))
	}

	seed := uint64(num)<<shareWordBits | uint64(idx)
	return mode, seed, nil
}

func nearestShareWord(word string) string {
	best := shareWords[0]
	bestDist := levenshtein.ComputeDistance(word, best)
	for _, w := range shareWords[1:] {
		d := levenshtein.ComputeDistance(word, w)
		if d < bestDist {
			best, bestDist = w, d
		}
	}
	return best
}
