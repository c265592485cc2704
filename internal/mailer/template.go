package mailer

import "fmt"

// ProjectNotification builds the fixed message sent to a client when a
// project is created for them.
func ProjectNotification(clientName, projectName, description, fromName string) Message {
	html := fmt.Sprintf(`
    <h2>Olá %s,</h2>
    <p>Um novo projeto foi criado para você:</p>
    <h3>%s</h3>
    <p><strong>Descrição:</strong></p>
    <p>%s</p>
    <br>
    <p>Entraremos em contato em breve com mais detalhes.</p>
    <br>
    <p>Atenciosamente,<br>%s</p>
  `, clientName, projectName, description, fromName)

	return Message{
		Subject: fmt.Sprintf("Novo Projeto Criado: %s", projectName),
		HTML:    html,
	}
}
