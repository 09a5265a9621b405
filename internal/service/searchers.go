package service

import (
	"context"
	"sort"
	"strings"

	"github.com/Onlynfk/podground-backend-sub001/internal/domain"
	"github.com/Onlynfk/podground-backend-sub001/internal/relevance"
	"github.com/Onlynfk/podground-backend-sub001/internal/repository"
	"github.com/Onlynfk/podground-backend-sub001/pkg/log"
)

// supersetFetchLimit bounds the fetch-then-filter categories. The store's
// query proxy mishandles substring operators for these tables, so rows
// beyond this window are invisible to search. Accepted ceiling.
const supersetFetchLimit = 100

// conversationScanLimit caps how many of the requester's conversations
// are searched for messages.
const conversationScanLimit = 100

// searchPodcasts combines ranked local results with the podcast
// directory, under the strict title-only score.
func (s *searchServiceImpl) searchPodcasts(ctx context.Context, query string, limit, offset int) ([]domain.PodcastResult, error) {
	// Fetch extra rows to survive score filtering.
	rows, err := s.repo.SearchPodcastsRanked(ctx, query, limit*2, offset)
	if err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("ranked podcast search unavailable, falling back to title match")
		return s.searchPodcastsFallback(ctx, query, limit, offset)
	}

	podcasts := make([]domain.PodcastResult, 0, len(rows))
	localIDs := make(map[string]struct{})
	for _, row := range rows {
		score := relevance.TitleOnlyScore(query, row.Title)
		if score < s.cfg.MinScore.Podcast {
			continue
		}
		podcasts = append(podcasts, domain.PodcastResult{
			ID:             row.ID,
			ListenNotesID:  row.ListenNotesID,
			Title:          row.Title,
			Description:    domain.Truncate(row.Description, domain.TextPreviewLen),
			ImageURL:       row.ImageURL,
			Publisher:      row.Publisher,
			Source:         domain.SourceDatabase,
			Type:           domain.TypePodcast,
			RelevanceScore: score,
		})
		if row.ListenNotesID != "" {
			localIDs[row.ListenNotesID] = struct{}{}
		}
	}

	if remaining := limit - len(podcasts); remaining > 0 && s.directory.Enabled() {
		apiResults, err := s.directory.SearchPodcasts(ctx, query, remaining*2, offset)
		if err != nil {
			// Directory trouble costs supplemental results only.
			l := log.Ctx(ctx)
			l.Warn().Err(err).Msg("podcast directory search failed")
		}
		for _, p := range apiResults {
			if _, ok := localIDs[p.ListenNotesID]; ok {
				continue
			}
			score := relevance.TitleOnlyScore(query, p.Title)
			if score < s.cfg.MinScore.Podcast {
				continue
			}
			p.RelevanceScore = score
			podcasts = append(podcasts, p)
		}
	}

	sort.SliceStable(podcasts, func(i, j int) bool {
		a, b := podcasts[i], podcasts[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if a.Source != b.Source {
			return a.Source == domain.SourceDatabase
		}
		return a.ID < b.ID
	})

	if len(podcasts) > limit {
		podcasts = podcasts[:limit]
	}
	return podcasts, nil
}

// searchPodcastsFallback is the plain substring path used when the
// ranking procedure is unavailable. It skips the directory supplement.
func (s *searchServiceImpl) searchPodcastsFallback(ctx context.Context, query string, limit, offset int) ([]domain.PodcastResult, error) {
	rows, err := s.repo.SearchPodcastsByTitle(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	podcasts := make([]domain.PodcastResult, 0, len(rows))
	for _, row := range rows {
		score := relevance.TitleOnlyScore(query, row.Title)
		if score < s.cfg.MinScore.Podcast {
			continue
		}
		podcasts = append(podcasts, domain.PodcastResult{
			ID:             row.ID,
			ListenNotesID:  row.ListenNotesID,
			Title:          row.Title,
			Description:    domain.Truncate(row.Description, domain.TextPreviewLen),
			ImageURL:       row.ImageURL,
			Publisher:      row.Publisher,
			Source:         domain.SourceDatabase,
			Type:           domain.TypePodcast,
			RelevanceScore: score,
		})
		if len(podcasts) == limit {
			break
		}
	}
	return podcasts, nil
}

// searchEpisodes mirrors searchPodcasts for episodes. Episodes without
// their own artwork inherit the parent podcast's.
func (s *searchServiceImpl) searchEpisodes(ctx context.Context, query string, limit, offset int) ([]domain.EpisodeResult, error) {
	rows, err := s.repo.SearchEpisodesRanked(ctx, query, limit*2, offset)
	if err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("ranked episode search unavailable, falling back to title match")
		return s.searchEpisodesFallback(ctx, query, limit, offset)
	}

	episodes := make([]domain.EpisodeResult, 0, len(rows))
	localIDs := make(map[string]struct{})
	for _, row := range rows {
		score := relevance.TitleOnlyScore(query, row.Title)
		if score < s.cfg.MinScore.Episode {
			continue
		}
		episodes = append(episodes, shapeEpisodeRow(row, score))
		if row.ListenNotesID != "" {
			localIDs[row.ListenNotesID] = struct{}{}
		}
	}

	if remaining := limit - len(episodes); remaining > 0 && s.directory.Enabled() {
		apiResults, err := s.directory.SearchEpisodes(ctx, query, remaining*2, offset)
		if err != nil {
			l := log.Ctx(ctx)
			l.Warn().Err(err).Msg("episode directory search failed")
		}
		for _, e := range apiResults {
			if _, ok := localIDs[e.ListenNotesID]; ok {
				continue
			}
			score := relevance.TitleOnlyScore(query, e.Title)
			if score < s.cfg.MinScore.Episode {
				continue
			}
			e.RelevanceScore = score
			episodes = append(episodes, e)
		}
	}

	sort.SliceStable(episodes, func(i, j int) bool {
		a, b := episodes[i], episodes[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if a.Source != b.Source {
			return a.Source == domain.SourceDatabase
		}
		return a.ID < b.ID
	})

	if len(episodes) > limit {
		episodes = episodes[:limit]
	}
	return episodes, nil
}

func (s *searchServiceImpl) searchEpisodesFallback(ctx context.Context, query string, limit, offset int) ([]domain.EpisodeResult, error) {
	rows, err := s.repo.SearchEpisodesByTitle(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	episodes := make([]domain.EpisodeResult, 0, len(rows))
	for _, row := range rows {
		score := relevance.TitleOnlyScore(query, row.Title)
		if score < s.cfg.MinScore.Episode {
			continue
		}
		episodes = append(episodes, shapeEpisodeRow(row, score))
		if len(episodes) == limit {
			break
		}
	}
	return episodes, nil
}

func (s *searchServiceImpl) searchPosts(ctx context.Context, query string, limit, offset int) ([]domain.PostResult, error) {
	rows, err := s.repo.SearchPosts(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.PostResult{}, nil
	}

	userIDs := make([]string, 0, len(rows))
	postIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		userIDs = append(userIDs, row.UserID)
		postIDs = append(postIDs, row.ID)
	}

	profiles, err := s.profiles.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	images, err := s.repo.FirstImagePerPost(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	posts := make([]domain.PostResult, 0, len(rows))
	for _, row := range rows {
		if relevance.Score(query, row.Content, "") < s.cfg.MinScore.Post {
			continue
		}
		posts = append(posts, domain.PostResult{
			ID:        row.ID,
			Content:   domain.Truncate(row.Content, domain.TextPreviewLen),
			PostType:  row.PostType,
			Author:    userRef(profiles, row.UserID),
			ImageURL:  images[row.ID],
			CreatedAt: row.CreatedAt,
			Type:      domain.TypePost,
		})
	}
	return posts, nil
}

func (s *searchServiceImpl) searchComments(ctx context.Context, query string, limit, offset int) ([]domain.CommentResult, error) {
	rows, err := s.repo.SearchComments(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.CommentResult{}, nil
	}

	userIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		userIDs = append(userIDs, row.UserID)
	}
	profiles, err := s.profiles.GetUsersByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	comments := make([]domain.CommentResult, 0, len(rows))
	for _, row := range rows {
		if relevance.Score(query, row.Content, "") < s.cfg.MinScore.Comment {
			continue
		}
		comments = append(comments, domain.CommentResult{
			ID:          row.ID,
			Content:     domain.Truncate(row.Content, domain.TextPreviewLen),
			PostID:      row.PostID,
			PostPreview: domain.Truncate(row.PostContent, domain.PostPreviewLen),
			Author:      userRef(profiles, row.UserID),
			CreatedAt:   row.CreatedAt,
			Type:        domain.TypeComment,
		})
	}
	return comments, nil
}

// searchMessages is scoped to conversations the requester currently
// participates in; it must never surface another user's conversations.
func (s *searchServiceImpl) searchMessages(ctx context.Context, query string, limit, offset int, userID string) ([]domain.MessageResult, error) {
	conversationIDs, err := s.repo.ConversationIDs(ctx, userID, conversationScanLimit)
	if err != nil {
		return nil, err
	}
	if len(conversationIDs) == 0 {
		return []domain.MessageResult{}, nil
	}

	rows, err := s.repo.RecentMessages(ctx, conversationIDs, supersetFetchLimit)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := rows[:0]
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Content), q) {
			matched = append(matched, row)
		}
	}
	matched = paginate(matched, offset, limit)
	if len(matched) == 0 {
		return []domain.MessageResult{}, nil
	}

	senderIDs := make([]string, 0, len(matched))
	for _, row := range matched {
		senderIDs = append(senderIDs, row.SenderID)
	}
	profiles, err := s.profiles.GetUsersByIDs(ctx, senderIDs)
	if err != nil {
		return nil, err
	}

	messages := make([]domain.MessageResult, 0, len(matched))
	for _, row := range matched {
		if relevance.Score(query, row.Content, "") < s.cfg.MinScore.Message {
			continue
		}
		messages = append(messages, domain.MessageResult{
			ID:             row.ID,
			Content:        domain.Truncate(row.Content, domain.TextPreviewLen),
			ConversationID: row.ConversationID,
			Sender:         userRef(profiles, row.SenderID),
			CreatedAt:      row.CreatedAt,
			Type:           domain.TypeMessage,
		})
	}
	return messages, nil
}

func (s *searchServiceImpl) searchEvents(ctx context.Context, query string, limit, offset int) ([]domain.EventResult, error) {
	rows, err := s.repo.RecentEvents(ctx, supersetFetchLimit)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := rows[:0]
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Title), q) {
			matched = append(matched, row)
		}
	}
	matched = paginate(matched, offset, limit)
	if len(matched) == 0 {
		return []domain.EventResult{}, nil
	}

	hostIDs := make([]string, 0, len(matched))
	for _, row := range matched {
		if row.HostUserID != "" {
			hostIDs = append(hostIDs, row.HostUserID)
		}
	}
	profiles := map[string]domain.Profile{}
	if len(hostIDs) > 0 {
		profiles, err = s.profiles.GetUsersByIDs(ctx, hostIDs)
		if err != nil {
			return nil, err
		}
	}

	events := make([]domain.EventResult, 0, len(matched))
	for _, row := range matched {
		if relevance.Score(query, row.Title, row.Description) < s.cfg.MinScore.Event {
			continue
		}
		creator := domain.UserRef{Name: row.HostName}
		if p, ok := profiles[row.HostUserID]; ok {
			creator = domain.UserRef{ID: p.ID, Name: p.Name, AvatarURL: p.AvatarURL}
		} else if creator.Name == "" {
			// Platform-hosted events have no member host.
			creator.Name = "PodGround"
		}
		events = append(events, domain.EventResult{
			ID:          row.ID,
			Title:       row.Title,
			Description: domain.Truncate(row.Description, domain.TextPreviewLen),
			EventDate:   row.EventDate,
			Location:    row.Location,
			Creator:     creator,
			CreatedAt:   row.CreatedAt,
			Type:        domain.TypeEvent,
		})
	}
	return events, nil
}

func (s *searchServiceImpl) searchResources(ctx context.Context, query string, limit, offset int) ([]domain.ResourceResult, error) {
	rows, err := s.repo.RecentResources(ctx, supersetFetchLimit)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := rows[:0]
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Title), q) {
			matched = append(matched, row)
		}
	}
	matched = paginate(matched, offset, limit)

	resources := make([]domain.ResourceResult, 0, len(matched))
	for _, row := range matched {
		if relevance.Score(query, row.Title, row.Description) < s.cfg.MinScore.Resource {
			continue
		}
		resources = append(resources, domain.ResourceResult{
			ID:           row.ID,
			Title:        row.Title,
			Description:  domain.Truncate(row.Description, domain.TextPreviewLen),
			ResourceType: row.Type,
			URL:          row.URL,
			ImageURL:     row.ImageURL,
			Author:       row.Author,
			ReadTime:     row.ReadTime,
			CreatedAt:    row.CreatedAt,
			Type:         domain.TypeResource,
		})
	}
	return resources, nil
}

// searchUsers surfaces platform members by name. The requester is
// excluded in the query; candidates must be platform-ready and must not
// have opted out of people search.
func (s *searchServiceImpl) searchUsers(ctx context.Context, query string, limit, offset int, userID string) ([]domain.UserResult, error) {
	// Overfetch: readiness and privacy filtering both thin the page.
	rows, err := s.repo.SearchUserProfiles(ctx, query, userID, limit*3, offset)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return []domain.UserResult{}, nil
	}

	candidateIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		candidateIDs = append(candidateIDs, row.UserID)
	}
	readyIDs, err := s.profiles.FilterPlatformReady(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}
	if len(readyIDs) == 0 {
		return []domain.UserResult{}, nil
	}

	profiles, err := s.profiles.GetUsersByIDs(ctx, readyIDs)
	if err != nil {
		return nil, err
	}

	users := make([]domain.UserResult, 0, limit)
	for _, id := range readyIDs {
		p, ok := profiles[id]
		if !ok {
			continue
		}
		if !s.profiles.IsSearchable(ctx, id) {
			continue
		}
		if relevance.Score(query, p.Name, p.Bio) < s.cfg.MinScore.User {
			continue
		}
		users = append(users, domain.UserResult{
			ID:          p.ID,
			Name:        p.Name,
			Bio:         domain.Truncate(p.Bio, domain.TextPreviewLen),
			AvatarURL:   p.AvatarURL,
			PodcastName: p.PodcastName,
			Type:        domain.TypeUser,
		})
		if len(users) == limit {
			break
		}
	}
	return users, nil
}

func (s *searchServiceImpl) searchPartners(ctx context.Context, query string, limit, offset int) ([]domain.PartnerResult, error) {
	rows, err := s.repo.ActivePartnerDeals(ctx, supersetFetchLimit)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := rows[:0]
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.PartnerName), q) ||
			strings.Contains(strings.ToLower(row.DealTitle), q) ||
			strings.Contains(strings.ToLower(row.Description), q) {
			matched = append(matched, row)
		}
	}
	matched = paginate(matched, offset, limit)

	partners := make([]domain.PartnerResult, 0, len(matched))
	for _, row := range matched {
		if relevance.Score(query, row.PartnerName+" "+row.DealTitle, row.Description) < s.cfg.MinScore.Partner {
			continue
		}
		partners = append(partners, domain.PartnerResult{
			ID:          row.ID,
			PartnerName: row.PartnerName,
			DealTitle:   row.DealTitle,
			Description: domain.Truncate(row.Description, domain.TextPreviewLen),
			DealURL:     row.DealURL,
			Category:    row.Category,
			LogoURL:     row.ImageURL,
			CreatedAt:   row.CreatedAt,
			Type:        domain.TypePartner,
		})
	}
	return partners, nil
}

func (s *searchServiceImpl) searchExperts(ctx context.Context, query string, limit, offset int) ([]domain.ExpertResult, error) {
	rows, err := s.repo.TopExperts(ctx, supersetFetchLimit)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := rows[:0]
	for _, row := range rows {
		if strings.Contains(strings.ToLower(row.Name), q) ||
			strings.Contains(strings.ToLower(row.Title), q) ||
			strings.Contains(strings.ToLower(row.Specialization), q) ||
			strings.Contains(strings.ToLower(row.Bio), q) {
			matched = append(matched, row)
		}
	}
	matched = paginate(matched, offset, limit)

	experts := make([]domain.ExpertResult, 0, len(matched))
	for _, row := range matched {
		if relevance.Score(query, row.Name+" "+row.Title+" "+row.Specialization, row.Bio) < s.cfg.MinScore.Expert {
			continue
		}
		experts = append(experts, domain.ExpertResult{
			ID:             row.ID,
			Name:           row.Name,
			Title:          row.Title,
			Specialization: row.Specialization,
			Bio:            domain.Truncate(row.Bio, domain.TextPreviewLen),
			AvatarURL:      row.AvatarURL,
			IsAvailable:    row.IsAvailable,
			HourlyRate:     row.HourlyRate,
			Rating:         row.Rating,
			CreatedAt:      row.CreatedAt,
			Type:           domain.TypeExpert,
		})
	}
	return experts, nil
}

func shapeEpisodeRow(row repository.EpisodeRow, score float64) domain.EpisodeResult {
	imageURL := row.ImageURL
	if imageURL == "" {
		imageURL = row.PodcastImageURL
	}
	return domain.EpisodeResult{
		ID:                   row.ID,
		ListenNotesID:        row.ListenNotesID,
		Title:                row.Title,
		Description:          domain.Truncate(row.Description, domain.TextPreviewLen),
		ImageURL:             imageURL,
		PodcastID:            row.PodcastID,
		PodcastTitle:         row.PodcastTitle,
		PodcastListenNotesID: row.PodcastListenNotesID,
		Source:               domain.SourceDatabase,
		Type:                 domain.TypeEpisode,
		RelevanceScore:       score,
	}
}

func userRef(profiles map[string]domain.Profile, userID string) domain.UserRef {
	if p, ok := profiles[userID]; ok {
		return domain.UserRef{ID: p.ID, Name: p.Name, AvatarURL: p.AvatarURL}
	}
	return domain.UserRef{ID: userID}
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}
