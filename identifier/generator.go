package identifier

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// Strategy selects how identifier base tokens are derived from a path
type Strategy string

const (
	// StrategyPath derives tokens from the project-relative directory and file name
	StrategyPath Strategy = "path"
	// StrategySemantic derives tokens from the file name only
	StrategySemantic Strategy = "semantic"
	// StrategyRole prefixes path-derived tokens with a caller-supplied role
	// label and rejects generation without one
	StrategyRole Strategy = "role"
)

// maxSuffixAttempts bounds hash-suffixed disambiguation before giving up
const maxSuffixAttempts = 4

// ErrCollisionExhausted is returned when hash-suffixed disambiguation still
// collides after the retry budget. It indicates a systemic hashing defect
// rather than ordinary input overlap.
var ErrCollisionExhausted = fmt.Errorf("identifier collision not resolvable within %d attempts", maxSuffixAttempts)

// ErrRoleRequired is returned when a role-strategy generator is asked for an
// identifier without a role label.
var ErrRoleRequired = fmt.Errorf("role strategy requires a role label")

// noiseTokens are path segments that carry no identity and are dropped from
// derived identifiers unless they are all the path contains.
var noiseTokens = map[string]bool{
	"src":  true,
	"lib":  true,
	"app":  true,
	"dist": true,
}

// Generator issues deterministic short identifiers for files and methods.
// One Generator owns the issued-ID registry for one analysis run; callers
// must feed it paths in a stable order for run-to-run reproducibility.
type Generator struct {
	ProjectRoot string
	Strategy    Strategy
	issued      map[string]string // id -> path that owns it
	byPath      map[string]string // path -> assigned id
}

// NewGenerator creates a Generator with an empty registry
func NewGenerator(projectRoot string, strategy Strategy) *Generator {
	if strategy == "" {
		strategy = StrategyPath
	}
	return &Generator{
		ProjectRoot: projectRoot,
		Strategy:    strategy,
		issued:      make(map[string]string),
		byPath:      make(map[string]string),
	}
}

// Generate derives the identifier for path, registering it so later calls
// with colliding base tokens receive a hash suffix. Repeated calls for the
// same path return the originally assigned identifier.
func (g *Generator) Generate(path string) (string, error) {
	return g.generate(path, "")
}

// GenerateWithRole derives a role-prefixed identifier (service-, util-, ...)
func (g *Generator) GenerateWithRole(path, role string) (string, error) {
	return g.generate(path, role)
}

func (g *Generator) generate(path, role string) (string, error) {
	if id, ok := g.byPath[path]; ok {
		return id, nil
	}
	if role == "" && g.Strategy == StrategyRole {
		return "", ErrRoleRequired
	}
	base := g.baseToken(path)
	if role != "" {
		base = kebabCase(role) + "-" + base
	}
	id, err := g.register(base, path)
	if err != nil {
		return "", err
	}
	g.byPath[path] = id
	return id, nil
}

// GenerateMethod derives an identifier for a method within an already
// identified file.
func (g *Generator) GenerateMethod(fileID, methodName string) (string, error) {
	key := fileID + "#" + methodName
	if id, ok := g.byPath[key]; ok {
		return id, nil
	}
	token := kebabCase(methodName)
	if token == "" {
		token = hashToken(key)
	}
	id, err := g.register(fileID+"-"+token, key)
	if err != nil {
		return "", err
	}
	g.byPath[key] = id
	return id, nil
}

// FileID returns the identifier for path, generating one on demand.
// Collision exhaustion is fatal and surfaces as the error, never as a
// substitute token.
func (g *Generator) FileID(path string) (string, error) {
	return g.Generate(path)
}

// Issued reports how many identifiers this generator has assigned
func (g *Generator) Issued() int {
	return len(g.issued)
}

// register claims base for path, suffixing with a 4-hex-digit path hash on
// collision, re-salting up to the retry budget.
func (g *Generator) register(base, path string) (string, error) {
	if owner, taken := g.issued[base]; !taken || owner == path {
		g.issued[base] = path
		return base, nil
	}
	for attempt := 0; attempt < maxSuffixAttempts; attempt++ {
		salted := fmt.Sprintf("%s#%d", path, attempt)
		candidate := fmt.Sprintf("%s-%s", base, hashSuffix(salted))
		if owner, taken := g.issued[candidate]; !taken || owner == path {
			g.issued[candidate] = path
			return candidate, nil
		}
	}
	return "", ErrCollisionExhausted
}

// baseToken derives the un-suffixed identifier candidate for path
func (g *Generator) baseToken(path string) string {
	rel := filepath.ToSlash(path)
	if g.Strategy == StrategySemantic {
		rel = filepath.Base(rel)
	} else if g.ProjectRoot != "" && filepath.IsAbs(rel) {
		if r, err := filepath.Rel(g.ProjectRoot, path); err == nil {
			rel = filepath.ToSlash(r)
		}
	}
	segments := strings.Split(rel, "/")
	var tokens []string
	for i, segment := range segments {
		if segment == "" || segment == "." {
			continue
		}
		if i == len(segments)-1 {
			segment = strings.TrimSuffix(segment, filepath.Ext(segment))
		}
		token := kebabCase(segment)
		if token == "" || noiseTokens[token] {
			continue
		}
		tokens = append(tokens, token)
	}
	if len(tokens) == 0 {
		return hashToken(path)
	}
	return strings.Join(tokens, "-")
}

// hashSuffix returns the 4-hex-digit disambiguation suffix for input
func hashSuffix(input string) string {
	digest, err := Hash([]byte(input))
	if err != nil {
		return "0000"
	}
	return fmt.Sprintf("%04x", digest&0xffff)
}

// hashToken is the fallback identifier for paths with no derivable token
func hashToken(path string) string {
	digest, err := Hash([]byte(path))
	if err != nil {
		return "f-00000000"
	}
	return fmt.Sprintf("f-%08x", digest&0xffffffff)
}

// kebabCase lowercases input, splitting camelCase boundaries and mapping
// every non-alphanumeric run to a single hyphen.
func kebabCase(input string) string {
	var builder strings.Builder
	var prev rune
	for _, r := range input {
		switch {
		case unicode.IsUpper(r):
			if prev != 0 && prev != '-' && !unicode.IsUpper(prev) {
				builder.WriteRune('-')
			}
			builder.WriteRune(unicode.ToLower(r))
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(r)
		default:
			if prev != '-' && builder.Len() > 0 {
				builder.WriteRune('-')
			}
			r = '-'
		}
		prev = r
	}
	return strings.Trim(builder.String(), "-")
}
