package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/broadcast/internal/core/messaging"
)

func TestParse(t *testing.T) {
	data := []byte(`name: small
publishers: [news]
subscribers:
  - name: reader
    interests: [breaking]
    subscribe: [news]
steps:
  - publish: {publisher: news, content: hello, type: breaking}
  - unsubscribe: {subscriber: reader, publisher: news}
  - interest: {subscriber: reader, type: weather}
  - label: rejoin
    subscribe: {subscriber: reader, publisher: news}
`)

	sc, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, "small", sc.Name)
	assert.Equal(t, []string{"news"}, sc.Publishers)
	require.Len(t, sc.Subscribers, 1)
	assert.Equal(t, []string{"breaking"}, sc.Subscribers[0].Interests)
	require.Len(t, sc.Steps, 4)

	assert.Equal(t, KindPublish, sc.Steps[0].Kind())
	assert.Equal(t, "hello", sc.Steps[0].Publish.Content)
	assert.Equal(t, KindUnsubscribe, sc.Steps[1].Kind())
	assert.Equal(t, KindInterest, sc.Steps[2].Kind())
	assert.Equal(t, KindSubscribe, sc.Steps[3].Kind())
	assert.Equal(t, "rejoin", sc.Steps[3].Label)

	assert.NoError(t, sc.Validate())
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("publishers: {"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse scenario")
}

func TestParse_UnknownField(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "misspelled subscriber interests",
			data: `publishers: [Haber TV]
subscribers:
  - name: Mehmet
    intrests: [Teknoloji]
    subscribe: [Haber TV]
`,
			want: "intrests",
		},
		{
			name: "misspelled step action",
			data: `publishers: [Haber TV]
steps:
  - publsh: {publisher: Haber TV, content: x, type: Haber}
`,
			want: "publsh",
		},
		{
			name: "unknown top level key",
			data: "name: x\nlisteners: []\n",
			want: "listeners",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "parse scenario")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParse_Empty(t *testing.T) {
	sc, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Scenario{}, sc)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	require.NoError(t, os.WriteFile(path, DemoYAML(), 0o644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Demo(), sc)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read scenario file")
}

func TestStep_Kind(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		want    StepKind
		actions int
	}{
		{name: "empty", step: Step{}, want: "", actions: 0},
		{name: "publish", step: Step{Publish: &PublishAction{}}, want: KindPublish, actions: 1},
		{name: "unsubscribe", step: Step{Unsubscribe: &LinkAction{}}, want: KindUnsubscribe, actions: 1},
		{name: "interest", step: Step{Interest: &InterestAction{}}, want: KindInterest, actions: 1},
		{name: "two actions", step: Step{Publish: &PublishAction{}, Subscribe: &LinkAction{}}, want: "", actions: 2},
		{
			name:    "all actions",
			step:    Step{Publish: &PublishAction{}, Subscribe: &LinkAction{}, Unsubscribe: &LinkAction{}, Interest: &InterestAction{}},
			want:    "",
			actions: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.step.Kind())
			assert.Equal(t, tt.actions, tt.step.actions())
		})
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		sc     Scenario
		fields []string
	}{
		{
			name:   "empty publisher name",
			sc:     Scenario{Publishers: []string{"  "}},
			fields: []string{"publishers[0]"},
		},
		{
			name:   "duplicate publisher",
			sc:     Scenario{Publishers: []string{"a", "a"}},
			fields: []string{"publishers[1]"},
		},
		{
			name: "duplicate subscriber and empty interest",
			sc: Scenario{
				Subscribers: []SubscriberSpec{
					{Name: "s"},
					{Name: "s", Interests: []string{""}},
				},
			},
			fields: []string{"subscribers[1].name", "subscribers[1].interests[0]"},
		},
		{
			name: "unknown publisher in subscription",
			sc: Scenario{
				Publishers:  []string{"a"},
				Subscribers: []SubscriberSpec{{Name: "s", Subscribe: []string{"a", "b"}}},
			},
			fields: []string{"subscribers[0].subscribe[1]"},
		},
		{
			name: "step without action",
			sc: Scenario{
				Steps: []Step{{Label: "nothing"}},
			},
			fields: []string{"steps[0]"},
		},
		{
			name: "step with two actions",
			sc: Scenario{
				Publishers:  []string{"p"},
				Subscribers: []SubscriberSpec{{Name: "s"}},
				Steps: []Step{{
					Publish:   &PublishAction{Publisher: "p", Type: "t"},
					Subscribe: &LinkAction{Subscriber: "s", Publisher: "p"},
				}},
			},
			fields: []string{"steps[0]"},
		},
		{
			name: "publish references",
			sc: Scenario{
				Steps: []Step{{Publish: &PublishAction{Publisher: "ghost", Type: ""}}},
			},
			fields: []string{"steps[0].publish.publisher", "steps[0].publish.type"},
		},
		{
			name: "link references",
			sc: Scenario{
				Steps: []Step{
					{Subscribe: &LinkAction{Subscriber: "x", Publisher: "y"}},
					{Unsubscribe: &LinkAction{Subscriber: "x", Publisher: "y"}},
				},
			},
			fields: []string{
				"steps[0].subscribe.subscriber", "steps[0].subscribe.publisher",
				"steps[1].unsubscribe.subscriber", "steps[1].unsubscribe.publisher",
			},
		},
		{
			name: "interest step",
			sc: Scenario{
				Subscribers: []SubscriberSpec{{Name: "s"}},
				Steps:       []Step{{Interest: &InterestAction{Subscriber: "s", Type: " "}}},
			},
			fields: []string{"steps[0].interest.type"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sc.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, messaging.ErrInvalidArgument)

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)

			got := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}

func TestValidate_EmptyContentAllowed(t *testing.T) {
	sc := Scenario{
		Publishers: []string{"p"},
		Steps:      []Step{{Publish: &PublishAction{Publisher: "p", Type: "t", Content: ""}}},
	}

	assert.NoError(t, sc.Validate())
}

func TestDemo_IsValid(t *testing.T) {
	sc := Demo()

	require.NoError(t, sc.Validate())
	assert.Equal(t, []string{"Haber TV", "Spor Kanalı"}, sc.Publishers)
	assert.Len(t, sc.Subscribers, 3)
	assert.Len(t, sc.Steps, 3)
}
