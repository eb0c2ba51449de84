package modules

import (
	"context"

	"tavu/internal/tavus"
)

// fakeAPI is a programmable tavus.API double. Slices seed the list calls;
// the recorded fields let tests assert which operations ran.
type fakeAPI struct {
	replicas      []tavus.Replica
	personas      map[string][]tavus.Persona
	videos        []tavus.Video
	conversations []tavus.Conversation

	listReplicaCalls int
	personaTypes     []string

	renamedReplicas []string
	deletedReplicas []string
	renamedVideos   []string
	deletedVideos   []string
	deletedPersonas []string
	endedConvs      []string
	deletedConvs    []string

	createConversationReq tavus.CreateConversationRequest
	createPersonaReq      tavus.CreatePersonaRequest

	renameReplicaErr error
	deleteReplicaErr error
}

var _ tavus.API = (*fakeAPI)(nil)

func (f *fakeAPI) ListReplicas(context.Context) ([]tavus.Replica, error) {
	f.listReplicaCalls++
	return f.replicas, nil
}

func (f *fakeAPI) GetReplica(_ context.Context, id string) (tavus.Replica, error) {
	for _, r := range f.replicas {
		if r.ReplicaID == id {
			return r, nil
		}
	}
	return tavus.Replica{}, nil
}

func (f *fakeAPI) CreateReplica(_ context.Context, req tavus.CreateReplicaRequest) (tavus.Replica, error) {
	return tavus.Replica{ReplicaID: "r-new", ReplicaName: req.ReplicaName, Status: "training"}, nil
}

func (f *fakeAPI) RenameReplica(_ context.Context, id, name string) error {
	if f.renameReplicaErr != nil {
		return f.renameReplicaErr
	}
	f.renamedReplicas = append(f.renamedReplicas, id+":"+name)
	return nil
}

func (f *fakeAPI) DeleteReplica(_ context.Context, id string) error {
	if f.deleteReplicaErr != nil {
		return f.deleteReplicaErr
	}
	f.deletedReplicas = append(f.deletedReplicas, id)
	return nil
}

func (f *fakeAPI) ListPersonas(_ context.Context, personaType string) ([]tavus.Persona, error) {
	f.personaTypes = append(f.personaTypes, personaType)
	return f.personas[personaType], nil
}

func (f *fakeAPI) CreatePersona(_ context.Context, req tavus.CreatePersonaRequest) (tavus.Persona, error) {
	f.createPersonaReq = req
	return tavus.Persona{PersonaID: "p-new", PersonaName: req.PersonaName}, nil
}

func (f *fakeAPI) PatchPersona(context.Context, string, map[string]any) error {
	return nil
}

func (f *fakeAPI) DeletePersona(_ context.Context, id string) error {
	f.deletedPersonas = append(f.deletedPersonas, id)
	return nil
}

func (f *fakeAPI) ListVideos(context.Context) ([]tavus.Video, error) {
	return f.videos, nil
}

func (f *fakeAPI) GenerateVideo(_ context.Context, req tavus.GenerateVideoRequest) (tavus.Video, error) {
	return tavus.Video{VideoID: "v-new", VideoName: req.VideoName, Status: "queued"}, nil
}

func (f *fakeAPI) RenameVideo(_ context.Context, id, name string) error {
	f.renamedVideos = append(f.renamedVideos, id+":"+name)
	return nil
}

func (f *fakeAPI) DeleteVideo(_ context.Context, id string) error {
	f.deletedVideos = append(f.deletedVideos, id)
	return nil
}

func (f *fakeAPI) ListConversations(context.Context) ([]tavus.Conversation, error) {
	return f.conversations, nil
}

func (f *fakeAPI) CreateConversation(_ context.Context, req tavus.CreateConversationRequest) (tavus.Conversation, error) {
	f.createConversationReq = req
	return tavus.Conversation{
		ConversationID:   "c-new",
		ConversationName: req.ConversationName,
		ConversationURL:  "https://tavus.daily.co/c-new",
		Status:           "active",
	}, nil
}

func (f *fakeAPI) EndConversation(_ context.Context, id string) error {
	f.endedConvs = append(f.endedConvs, id)
	return nil
}

func (f *fakeAPI) DeleteConversation(_ context.Context, id string) error {
	f.deletedConvs = append(f.deletedConvs, id)
	return nil
}
