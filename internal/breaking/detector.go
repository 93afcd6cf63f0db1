package breaking

import (
	"fmt"
	"sort"

	"github.com/gitai-dev/gitai-core/internal/structural"
)

// Detect compares before and after Structural Summaries of the same code
// unit and returns every typed BreakingChange found. filePath is stamped
// onto each result for downstream cascade-trigger resolution.
func Detect(filePath string, before, after structural.Summary) []BreakingChange {
	var changes []BreakingChange

	changes = append(changes, detectFunctionChanges(filePath, before.Functions, after.Functions)...)
	changes = append(changes, detectClassChanges(filePath, before.Classes, after.Classes)...)
	changes = append(changes, detectImportChanges(filePath, before.Imports, after.Imports)...)

	return changes
}

func detectFunctionChanges(filePath string, before, after []structural.FunctionInfo) []BreakingChange {
	beforeByName := indexFunctions(before)
	afterByName := indexFunctions(after)

	var changes []BreakingChange

	for _, name := range sortedKeys(beforeByName) {
		b := beforeByName[name]
		a, stillPresent := afterByName[name]
		if !stillPresent {
			changes = append(changes, BreakingChange{
				ChangeType:  FunctionRemoved,
				Component:   name,
				Description: fmt.Sprintf("function %q was removed", name),
				ImpactLevel: ImpactProject,
				Suggestions: []string{"restore the function, or provide a documented migration path for its callers"},
				Before:      signatureOf(b),
				FilePath:    filePath,
			})
			continue
		}

		if len(b.Parameters) != len(a.Parameters) {
			changes = append(changes, BreakingChange{
				ChangeType:  ParameterCountChanged,
				Component:   name,
				Description: fmt.Sprintf("function %q parameter count changed from %d to %d", name, len(b.Parameters), len(a.Parameters)),
				ImpactLevel: ImpactModule,
				Suggestions: []string{"update all call sites to match the new parameter count"},
				Before:      signatureOf(b),
				After:       signatureOf(a),
				FilePath:    filePath,
			})
		} else if !stringsEqual(b.Parameters, a.Parameters) {
			changes = append(changes, BreakingChange{
				ChangeType:  FunctionSignatureChanged,
				Component:   name,
				Description: fmt.Sprintf("function %q parameter types changed", name),
				ImpactLevel: ImpactModule,
				Suggestions: []string{"verify call sites still pass compatible argument types"},
				Before:      signatureOf(b),
				After:       signatureOf(a),
				FilePath:    filePath,
			})
		}

		if b.ReturnType != a.ReturnType {
			changes = append(changes, BreakingChange{
				ChangeType:  ReturnTypeChanged,
				Component:   name,
				Description: fmt.Sprintf("function %q return type changed from %q to %q", name, b.ReturnType, a.ReturnType),
				ImpactLevel: ImpactModule,
				Suggestions: []string{"update callers that consume the return value"},
				Before:      signatureOf(b),
				After:       signatureOf(a),
				FilePath:    filePath,
			})
		}

		if b.Visibility != a.Visibility {
			changes = append(changes, BreakingChange{
				ChangeType:  VisibilityChanged,
				Component:   name,
				Description: fmt.Sprintf("function %q visibility changed from %q to %q", name, b.Visibility, a.Visibility),
				ImpactLevel: ImpactLocal,
				Suggestions: []string{"confirm external callers still have access"},
				Before:      b.Visibility,
				After:       a.Visibility,
				FilePath:    filePath,
			})
		}
	}

	for _, name := range sortedKeys(afterByName) {
		a := afterByName[name]
		if _, existedBefore := beforeByName[name]; !existedBefore {
			changes = append(changes, BreakingChange{
				ChangeType:  FunctionAdded,
				Component:   name,
				Description: fmt.Sprintf("function %q was added", name),
				ImpactLevel: ImpactMinimal,
				After:       signatureOf(a),
				FilePath:    filePath,
			})
		}
	}

	return changes
}

func detectClassChanges(filePath string, before, after []structural.ClassInfo) []BreakingChange {
	beforeByName := indexClasses(before)
	afterByName := indexClasses(after)

	var changes []BreakingChange

	for _, name := range sortedKeys(beforeByName) {
		b := beforeByName[name]
		a, stillPresent := afterByName[name]
		if !stillPresent {
			changes = append(changes, BreakingChange{
				ChangeType:  StructureChanged,
				Component:   name,
				Description: fmt.Sprintf("class %q was removed", name),
				ImpactLevel: ImpactProject,
				Suggestions: []string{"restore the type, or provide a documented migration path"},
				FilePath:    filePath,
			})
			continue
		}

		if !stringsEqual(sortedCopy(b.Implements), sortedCopy(a.Implements)) {
			changes = append(changes, BreakingChange{
				ChangeType:  InterfaceChanged,
				Component:   name,
				Description: fmt.Sprintf("class %q implements list changed", name),
				ImpactLevel: ImpactProject,
				Suggestions: []string{"check every interface-typed reference to this class still holds"},
				Before:      fmt.Sprintf("%v", b.Implements),
				After:       fmt.Sprintf("%v", a.Implements),
				FilePath:    filePath,
			})
		}

		structurallyChanged := b.Extends != a.Extends ||
			!stringsEqual(sortedCopy(b.Methods), sortedCopy(a.Methods)) ||
			!stringsEqual(sortedCopy(b.Fields), sortedCopy(a.Fields)) ||
			b.IsAbstract != a.IsAbstract

		if structurallyChanged {
			changes = append(changes, BreakingChange{
				ChangeType:  StructureChanged,
				Component:   name,
				Description: fmt.Sprintf("class %q structure changed", name),
				ImpactLevel: ImpactModule,
				Suggestions: []string{"review members and inheritance for downstream compatibility"},
				FilePath:    filePath,
			})
		}
	}

	for _, name := range sortedKeys(afterByName) {
		if _, existedBefore := beforeByName[name]; !existedBefore {
			changes = append(changes, BreakingChange{
				ChangeType:  StructureChanged,
				Component:   name,
				Description: fmt.Sprintf("class %q was added", name),
				ImpactLevel: ImpactMinimal,
				FilePath:    filePath,
			})
		}
	}

	return changes
}

func detectImportChanges(filePath string, before, after []string) []BreakingChange {
	beforeSet := toSet(before)
	afterSet := toSet(after)

	var changes []BreakingChange

	for _, imp := range sortedKeys(beforeSet) {
		if !afterSet[imp] {
			changes = append(changes, BreakingChange{
				ChangeType:  ModuleStructureChanged,
				Component:   imp,
				Description: fmt.Sprintf("import %q was removed", imp),
				ImpactLevel: ImpactLocal,
				Suggestions: []string{"confirm the removed dependency is no longer referenced"},
				FilePath:    filePath,
			})
		}
	}
	for _, imp := range sortedKeys(afterSet) {
		if !beforeSet[imp] {
			changes = append(changes, BreakingChange{
				ChangeType:  ModuleStructureChanged,
				Component:   imp,
				Description: fmt.Sprintf("import %q was added", imp),
				ImpactLevel: ImpactMinimal,
				FilePath:    filePath,
			})
		}
	}

	return changes
}

// OverallRisk classifies a set of BreakingChanges by precedence: the
// first matching rule wins (critical, then high, then medium, then "only
// additions" is low, else none of the above is none).
func OverallRisk(changes []BreakingChange) RiskLevel {
	if len(changes) == 0 {
		return RiskNone
	}

	var hasCritical, hasHigh, hasMedium, onlyAdditions bool
	onlyAdditions = true

	for _, c := range changes {
		// StructureChanged and ModuleStructureChanged are shared between a
		// genuine structural change and a pure addition (class/import
		// added), distinguished only by ImpactLevel; ImpactMinimal always
		// marks the latter, so bucket on it instead of on ChangeType alone.
		if c.ImpactLevel != ImpactMinimal {
			onlyAdditions = false

			switch c.ChangeType {
			case FunctionRemoved, InterfaceChanged:
				hasCritical = true
			case FunctionSignatureChanged, ParameterCountChanged, ReturnTypeChanged, VisibilityChanged:
				hasHigh = true
			case StructureChanged, ModuleStructureChanged:
				hasMedium = true
			}
		}
	}

	switch {
	case hasCritical:
		return RiskCritical
	case hasHigh:
		return RiskHigh
	case hasMedium:
		return RiskMedium
	case onlyAdditions:
		return RiskLow
	default:
		return RiskNone
	}
}

func indexFunctions(functions []structural.FunctionInfo) map[string]structural.FunctionInfo {
	m := make(map[string]structural.FunctionInfo, len(functions))
	for _, fn := range functions {
		m[fn.Name] = fn
	}
	return m
}

func indexClasses(classes []structural.ClassInfo) map[string]structural.ClassInfo {
	m := make(map[string]structural.ClassInfo, len(classes))
	for _, c := range classes {
		m[c.Name] = c
	}
	return m
}

func signatureOf(fn structural.FunctionInfo) string {
	return fmt.Sprintf("%s(%v) %s", fn.Name, fn.Parameters, fn.ReturnType)
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortedCopy(s []string) []string {
	out := append([]string(nil), s...)
	sort.Strings(out)
	return out
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func sortedKeys[V any](set map[string]V) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
