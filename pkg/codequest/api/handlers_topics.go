package api

import (
	"net/http"
)

func (h *Handler) ListTopics(w http.ResponseWriter, r *http.Request) {
	resp := TopicsResponse{
		Count:  h.store.TopicCount(),
		Topics: make([]TopicResponse, 0, h.store.TopicCount()),
	}
	projection := h.store.Projection()
	for topic := 0; topic < h.store.TopicCount(); topic++ {
		resp.Topics = append(resp.Topics, TopicResponse{Topic: topic, Images: projection[topic]})
	}
	WriteJSONResponse(w, h.logger, http.StatusOK, resp)
}

func (h *Handler) GetTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := parseTopic(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	entries, err := h.store.Topic(topic)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteJSONResponse(w, h.logger, http.StatusOK, TopicResponse{Topic: topic, Images: entries})
}

func (h *Handler) GetTopicManifest(w http.ResponseWriter, r *http.Request) {
	topic, err := parseTopic(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	names, err := h.store.Names(topic)
	if err != nil {
		h.logger.Error(err, "failed to read manifest", "topic", topic)
		WriteError(w, h.logger, err)
		return
	}
	WriteJSONResponse(w, h.logger, http.StatusOK, ManifestResponse{Topic: topic, Names: names})
}

func (h *Handler) AddImage(w http.ResponseWriter, r *http.Request) {
	topic, err := parseTopic(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	var req AddImageRequest
	if err := h.parseJSONRequest(r, &req); err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if err := ValidateAssetPath(req.Name); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	if err := h.store.AddImage(topic, req.Name); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	entries, err := h.store.Topic(topic)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteJSONResponse(w, h.logger, http.StatusCreated, TopicResponse{Topic: topic, Images: entries})
}

func (h *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	topic, err := parseTopic(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	name, err := imageParam(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	if err := ValidateImageName(name); err != nil {
		WriteError(w, h.logger, err)
		return
	}

	removed, err := h.store.DeleteImage(topic, name)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteJSONResponse(w, h.logger, http.StatusOK, DeleteImageResponse{Topic: topic, Name: name, Removed: removed})
}

func (h *Handler) ReloadTopic(w http.ResponseWriter, r *http.Request) {
	topic, err := parseTopic(r)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}

	entries, err := h.store.Reload(topic)
	if err != nil {
		WriteError(w, h.logger, err)
		return
	}
	WriteJSONResponse(w, h.logger, http.StatusOK, TopicResponse{Topic: topic, Images: entries})
}

func (h *Handler) ReloadAll(w http.ResponseWriter, r *http.Request) {
	projection := h.store.LoadAll()

	resp := TopicsResponse{
		Count:  len(projection),
		Topics: make([]TopicResponse, 0, len(projection)),
	}
	for topic := 0; topic < len(projection); topic++ {
		resp.Topics = append(resp.Topics, TopicResponse{Topic: topic, Images: projection[topic]})
	}
	WriteJSONResponse(w, h.logger, http.StatusOK, resp)
}
