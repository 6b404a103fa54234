package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Shopify/go-lua"
	apperrors "github.com/louisbranch/adapter.pattern/internal/platform/errors"
)

const scenarioTypeName = "scenario"

// LoadFile runs the Lua script at path and returns the Scenario it builds.
//
// The script must return a value created with Scenario.new:
//
//	local s = Scenario.new("ambush")
//	s:section("Ambush")
//	s:tank("assign_driver", "Jake")
//	s:adapter("fire_weapon")
//	return s
//
// s:section writes its text verbatim; s:heading takes a catalog key instead.
// Unknown operations and heading keys fail the load with their own codes.
func LoadFile(path string) (*Scenario, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, loadFailed(path, "open", err)
	}
	state, build := newLuaState()
	if err := lua.LoadFile(state, path, ""); err != nil {
		return nil, loadFailed(path, "load lua", err)
	}
	scenario, err := runChunk(state, build, path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scenario, nil
}

// LoadString runs Lua source as if it were a file called name.
func LoadString(name string, source string) (*Scenario, error) {
	state, build := newLuaState()
	if err := lua.LoadBuffer(state, source, name, ""); err != nil {
		return nil, loadFailed(name, "load lua", err)
	}
	scenario, err := runChunk(state, build, name)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(scenario.Name) == "" {
		scenario.Name = name
	}
	return scenario, nil
}

// luaBuild records the domain error behind a rejected DSL call, which Lua
// only carries as text.
type luaBuild struct {
	err error
}

func (b *luaBuild) reject(state *lua.State, arg int, err error) {
	b.err = err
	lua.ArgumentError(state, arg, string(apperrors.GetCode(err)))
}

func newLuaState() (*lua.State, *luaBuild) {
	build := &luaBuild{}
	state := lua.NewState()
	lua.OpenLibraries(state)
	registerScenarioType(state, build)
	registerScenarioConstructor(state)
	return state, build
}

func runChunk(state *lua.State, build *luaBuild, path string) (*Scenario, error) {
	if err := state.ProtectedCall(0, 1, 0); err != nil {
		if build.err != nil {
			return nil, fmt.Errorf("%s: %w", err, build.err)
		}
		return nil, loadFailed(path, "run lua", err)
	}
	if state.TypeOf(-1) != lua.TypeUserData {
		state.Pop(1)
		return nil, loadFailed(path, "scenario script must return Scenario", nil)
	}
	ud := state.ToUserData(-1)
	state.Pop(1)
	scenario, ok := ud.(*Scenario)
	if !ok || scenario == nil {
		return nil, loadFailed(path, "scenario script returned invalid Scenario", nil)
	}
	if err := Validate(scenario); err != nil {
		return nil, err
	}
	return scenario, nil
}

func loadFailed(path string, message string, cause error) error {
	msg := fmt.Sprintf("%s: %s", path, message)
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return apperrors.WrapWithMetadata(apperrors.CodeScenarioLoadFailed, msg,
		map[string]string{"Path": path}, cause)
}

func registerScenarioType(state *lua.State, build *luaBuild) {
	lua.NewMetaTable(state, scenarioTypeName)
	state.NewTable()
	lua.SetFunctions(state, scenarioMethods(build), 0)
	state.SetField(-2, "__index")
	state.Pop(1)
}

func registerScenarioConstructor(state *lua.State) {
	state.NewTable()
	lua.SetFunctions(state, scenarioConstructor, 0)
	state.SetGlobal("Scenario")
}

var scenarioConstructor = []lua.RegistryFunction{
	{Name: "new", Function: scenarioNew},
}

func scenarioMethods(build *luaBuild) []lua.RegistryFunction {
	return []lua.RegistryFunction{
		{Name: "section", Function: scenarioSection},
		{Name: "heading", Function: headingMethod(build)},
		{Name: "robot", Function: unitMethod(build, UnitRobot)},
		{Name: "tank", Function: unitMethod(build, UnitTank)},
		{Name: "adapter", Function: unitMethod(build, UnitAdapter)},
	}
}

func scenarioNew(state *lua.State) int {
	name := lua.OptString(state, 1, "")
	state.PushUserData(&Scenario{Name: name})
	lua.SetMetaTableNamed(state, scenarioTypeName)
	return 1
}

func scenarioSection(state *lua.State) int {
	scenario := checkScenario(state)
	scenario.SectionText(lua.CheckString(state, 2))
	return 0
}

func headingMethod(build *luaBuild) lua.Function {
	return func(state *lua.State) int {
		scenario := checkScenario(state)
		key := lua.CheckString(state, 2)
		if err := ValidateHeading(key); err != nil {
			build.reject(state, 2, err)
			return 0
		}
		scenario.Section(key)
		return 0
	}
}

func unitMethod(build *luaBuild, unit Unit) lua.Function {
	return func(state *lua.State) int {
		scenario := checkScenario(state)
		operation := lua.CheckString(state, 2)
		arg := lua.OptString(state, 3, "")
		if err := ValidateCall(unit, operation); err != nil {
			build.reject(state, 2, err)
			return 0
		}
		scenario.Call(unit, operation, arg)
		return 0
	}
}

func checkScenario(state *lua.State) *Scenario {
	ud := lua.CheckUserData(state, 1, scenarioTypeName)
	if scenario, ok := ud.(*Scenario); ok && scenario != nil {
		return scenario
	}
	lua.ArgumentError(state, 1, "scenario expected")
	return nil
}
